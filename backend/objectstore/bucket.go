// Package objectstore implements the object-store scanner and readers of
// spec.md §4.5: sorted object enumeration and background-streamed reads
// with seek by (key, last-modified). Grounded on rclone's backend/s3
// ListObjectsV2/Open conventions; the bucket handle itself is injected
// preconstructed, exactly like rclone's fs.Fs is built once and reused.
package objectstore

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/flowcore/connio/internal/connerrs"
)

// Bucket is the minimal slice of an S3-compatible client this package
// needs. Any aws-sdk-go *s3.S3 client satisfies it directly, as do MinIO
// or Ceph endpoints configured through the same SDK.
type Bucket interface {
	ListObjectsV2WithContext(ctx aws.Context, input *s3.ListObjectsV2Input, opts ...request.Option) (*s3.ListObjectsV2Output, error)
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
}

// ObjectInfo is one entry of a sorted bucket listing.
type ObjectInfo struct {
	Key          string
	LastModified time.Time
	Size         int64
}

// Scanner enumerates objects under a bucket/prefix sorted by
// (last_modified, key) ascending — the same total order governs selection
// and seek (spec.md §4.5).
type Scanner struct {
	bucket    Bucket
	bucketName string
	prefix    string
	pollNew   bool

	processed map[string]bool
}

// New builds a scanner over bucketName/prefix.
func New(bucket Bucket, bucketName, prefix string, pollNew bool) *Scanner {
	return &Scanner{
		bucket:     bucket,
		bucketName: bucketName,
		prefix:     prefix,
		pollNew:    pollNew,
		processed:  make(map[string]bool),
	}
}

// PollingEnabled reports whether the scanner should re-list after
// exhausting the current listing (spec.md §4.5 "Polling").
func (s *Scanner) PollingEnabled() bool { return s.pollNew }

// listSorted lists every object under the prefix and returns it sorted by
// (last_modified, key) ascending.
func (s *Scanner) listSorted(ctx context.Context) ([]ObjectInfo, error) {
	var out []ObjectInfo
	var token *string
	for {
		resp, err := s.bucket.ListObjectsV2WithContext(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucketName),
			Prefix:            aws.String(s.prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, connerrs.New(connerrs.KindObjectStore, "s3.ListObjectsV2", err)
		}
		for _, obj := range resp.Contents {
			if obj.Key == nil {
				continue
			}
			out = append(out, ObjectInfo{
				Key:          *obj.Key,
				LastModified: aws.TimeValue(obj.LastModified),
				Size:         aws.Int64Value(obj.Size),
			})
		}
		if resp.IsTruncated == nil || !*resp.IsTruncated {
			break
		}
		token = resp.NextContinuationToken
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastModified.Equal(out[j].LastModified) {
			return out[i].LastModified.Before(out[j].LastModified)
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// NextObject returns the earliest-sorted object not yet marked processed,
// marking it processed as it is returned. It returns (nil, nil) when
// nothing new is available.
func (s *Scanner) NextObject(ctx context.Context) (*ObjectInfo, error) {
	listing, err := s.listSorted(ctx)
	if err != nil {
		return nil, err
	}
	for i := range listing {
		obj := listing[i]
		if s.processed[obj.Key] {
			continue
		}
		s.processed[obj.Key] = true
		return &obj, nil
	}
	return nil, nil
}

// MarkProcessedBefore marks every object that sorts strictly before
// (lastModified, key), plus key itself, as processed — used by Seek to
// replay the scanner's selection state up to a resume point (spec.md
// §4.5 "Seek").
func (s *Scanner) MarkProcessedBefore(listing []ObjectInfo, lastModified time.Time, key string) {
	for _, obj := range listing {
		if obj.Key == key || lessObject(obj.LastModified, obj.Key, lastModified, key) {
			s.processed[obj.Key] = true
		}
	}
}

// Listing exposes a fresh sorted listing, used by Seek to locate the
// resume target's last-modified timestamp.
func (s *Scanner) Listing(ctx context.Context) ([]ObjectInfo, error) {
	return s.listSorted(ctx)
}

func lessObject(lmA time.Time, keyA string, lmB time.Time, keyB string) bool {
	if !lmA.Equal(lmB) {
		return lmA.Before(lmB)
	}
	return keyA < keyB
}
