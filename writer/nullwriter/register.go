package nullwriter

import "github.com/flowcore/connio/internal/registry"

func init() {
	registry.RegisterWriter("null", func(map[string]string) (any, error) {
		return New(), nil
	})
}
