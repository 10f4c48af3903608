package objectstore

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/flowcore/connio/conn"
	"github.com/flowcore/connio/internal/connerrs"
	"github.com/flowcore/connio/internal/connlog"
	"github.com/flowcore/connio/internal/connmetrics"
	"github.com/flowcore/connio/offset"
)

// PollInterval is how long the reader sleeps between re-listings when
// polling is enabled and nothing new was found (spec.md §4.5 "Polling").
const PollInterval = 10 * time.Second

// seekTolerance is the number of trailing bytes a seek fast-forward is
// allowed to fall short by at end-of-stream — a missing trailing newline
// (spec.md §4.5 "Seek").
const seekTolerance = 2

const backendName = "objectstore"

// ReadMethod selects how object bytes are split into records.
type ReadMethod int

const (
	ByLine ReadMethod = iota
	Full
)

// Reader implements conn.Reader over a sorted object listing, streaming
// each selected object's bytes through a background worker into an
// io.Pipe (spec.md §4.5, §9 "Background producer → consumer pipe").
// Setting Delimited splits records the way fsreader.DSVReader does and
// replays the header on seek, matching spec.md §4.4 applied to objects.
type Reader struct {
	scanner   *Scanner
	method    ReadMethod
	delimited bool
	delim     byte

	current   *streamingObject
	buf       *bufio.Reader
	pos       int64
	total     uint64
	deferred  *conn.ReadResult
}

type streamingObject struct {
	key          string
	lastModified time.Time
	pr           *io.PipeReader
	grp          *errgroup.Group
}

// NewReader builds an object-store line/full reader.
func NewReader(bucket Bucket, bucketName, prefix string, pollNew bool, method ReadMethod) *Reader {
	return &Reader{scanner: New(bucket, bucketName, prefix, pollNew), method: method}
}

// NewDelimitedReader builds an object-store delimited-record reader.
func NewDelimitedReader(bucket Bucket, bucketName, prefix string, pollNew bool, delim byte) *Reader {
	return &Reader{scanner: New(bucket, bucketName, prefix, pollNew), delimited: true, delim: delim}
}

func (r *Reader) String() string {
	if r.current != nil {
		return r.current.key
	}
	return "objectstore-reader"
}

// StorageType implements conn.Reader.
func (r *Reader) StorageType() conn.StorageType { return conn.StorageObjectStore }

// MaxAllowedConsecutiveErrors implements conn.Reader.
func (r *Reader) MaxAllowedConsecutiveErrors() int { return 0 }

// Close joins any in-flight background worker and releases its pipe.
func (r *Reader) Close() error {
	return r.joinCurrent()
}

func (r *Reader) joinCurrent() error {
	if r.current == nil {
		return nil
	}
	err := r.current.grp.Wait()
	r.current = nil
	r.buf = nil
	if err != nil {
		return connerrs.New(connerrs.KindObjectStore, "s3.GetObject", err)
	}
	return nil
}

// startStreaming joins the previous worker (propagating its error), then
// spawns exactly one new background worker streaming obj's bytes into an
// io.Pipe (spec.md §4.5 "Streaming", §9).
func (r *Reader) startStreaming(ctx context.Context, obj ObjectInfo) error {
	if err := r.joinCurrent(); err != nil {
		return err
	}

	pr, pw := io.Pipe()
	grp, gctx := errgroup.WithContext(ctx)
	key := obj.Key
	bucketName := r.scanner.bucketName
	bucket := r.scanner.bucket

	grp.Go(func() error {
		resp, err := bucket.GetObjectWithContext(gctx, &s3.GetObjectInput{
			Bucket: aws.String(bucketName),
			Key:    aws.String(key),
		})
		if err != nil {
			_ = pw.CloseWithError(err)
			return err
		}
		defer resp.Body.Close()
		if _, err := io.Copy(pw, resp.Body); err != nil {
			_ = pw.CloseWithError(err)
			return err
		}
		return pw.Close()
	})

	r.current = &streamingObject{key: key, lastModified: obj.LastModified, pr: pr, grp: grp}
	r.buf = bufio.NewReader(pr)
	r.pos = 0
	connmetrics.SourcesOpened.WithLabelValues(backendName).Inc()
	return nil
}

// Seek lists the prefix once, marks every object that sorts at or before
// the resume target as processed, starts streaming the target object, and
// fast-forwards past bytes_offset bytes (spec.md §4.5 "Seek").
func (r *Reader) Seek(f offset.Frontier) error {
	val, ok := f.Get(offset.Empty)
	if !ok {
		return nil
	}
	if val.Kind() != offset.KindObjectStorePosition {
		connlog.Errorf(r, "incorrect offset kind in object-store frontier: %s", val)
		return nil
	}

	ctx := context.Background()
	listing, err := r.scanner.Listing(ctx)
	if err != nil {
		return err
	}

	target := val.Path()
	var targetObj *ObjectInfo
	for i := range listing {
		if listing[i].Key == target {
			targetObj = &listing[i]
			break
		}
	}
	if targetObj == nil {
		connlog.Errorf(connlog.Name(target), "seek target object no longer exists, falling back to a full re-list")
		return nil
	}

	r.scanner.MarkProcessedBefore(listing, targetObj.LastModified, target)

	if err := r.startStreaming(ctx, *targetObj); err != nil {
		return err
	}

	if r.delimited && val.BytesOffset() > 0 {
		header, n, herr := r.readRecord()
		if herr != nil {
			return connerrs.New(connerrs.KindCSVParse, "read header on seek", herr)
		}
		r.pos += int64(n)
		deferred := conn.Data(
			conn.NewTokenizedFields(conn.Insert, header),
			offset.Empty,
			offset.ObjectStorePosition(val.TotalEntriesRead(), target, val.BytesOffset()),
		)
		r.deferred = &deferred
		return r.fastForwardRecords(val.BytesOffset() - uint64(r.pos))
	}

	return r.fastForwardBytes(int64(val.BytesOffset()))
}

// fastForwardBytes discards n bytes from the stream, tolerating a short
// read at EOF of up to seekTolerance bytes (a missing trailing newline).
func (r *Reader) fastForwardBytes(n int64) error {
	skipped, err := io.CopyN(io.Discard, r.buf, n)
	if err != nil {
		if err == io.EOF && n-skipped <= seekTolerance {
			connlog.Logf(r, "seek fast-forward fell %d bytes short of target at EOF, tolerating", n-skipped)
		} else {
			return connerrs.New(connerrs.KindIO, "seek fast-forward", err)
		}
	}
	r.pos += skipped
	return nil
}

// fastForwardRecords discards whole records (not raw bytes) until
// approximately targetBytes additional bytes have been consumed, used for
// delimited-mode seeks after the header has already been read.
func (r *Reader) fastForwardRecords(targetBytes uint64) error {
	var consumed uint64
	for consumed < targetBytes {
		_, n, err := r.readRecord()
		if n == 0 || err == io.EOF {
			if targetBytes-consumed <= seekTolerance {
				connlog.Logf(r, "seek fast-forward fell %d bytes short of target at EOF, tolerating", targetBytes-consumed)
				break
			}
			if err != nil && err != io.EOF {
				return connerrs.New(connerrs.KindCSVParse, "seek fast-forward", err)
			}
			break
		}
		consumed += uint64(n)
		r.pos += int64(n)
	}
	return nil
}

// Read implements conn.Reader.
func (r *Reader) Read() (conn.ReadResult, error) {
	if r.deferred != nil {
		res := *r.deferred
		r.deferred = nil
		return res, nil
	}

	ctx := context.Background()
	for {
		if r.buf != nil {
			if r.delimited {
				fields, n, err := r.readRecord()
				if err != nil {
					connmetrics.ReadErrors.WithLabelValues(backendName, "csv-parse").Inc()
					return conn.ReadResult{}, connerrs.New(connerrs.KindCSVParse, "readRecord", err)
				}
				if n > 0 {
					return r.emitData(conn.NewTokenizedFields(conn.Insert, fields), n), nil
				}
			} else {
				line, n, err := r.readNext()
				if err != nil {
					connmetrics.ReadErrors.WithLabelValues(backendName, "io").Inc()
					return conn.ReadResult{}, connerrs.New(connerrs.KindIO, "readNext", err)
				}
				if n > 0 || r.method == Full {
					res := r.emitData(conn.NewRawBytes(conn.Insert, line), n)
					if r.method == Full {
						commitAllowed := true
						fin := conn.FinishedSourceResult(commitAllowed)
						r.deferred = &fin
						if err := r.joinCurrent(); err != nil {
							return conn.ReadResult{}, err
						}
					}
					return res, nil
				}
			}

			if err := r.joinCurrent(); err != nil {
				return conn.ReadResult{}, err
			}
			return conn.FinishedSourceResult(true), nil
		}

		obj, err := r.scanner.NextObject(ctx)
		if err != nil {
			connmetrics.ReadErrors.WithLabelValues(backendName, "object-store").Inc()
			return conn.ReadResult{}, err
		}
		if obj != nil {
			if err := r.startStreaming(ctx, *obj); err != nil {
				return conn.ReadResult{}, err
			}
			meta := &conn.SourceMetadata{Path: obj.Key, ModifiedAt: obj.LastModified, Size: obj.Size, Seen: obj.LastModified}
			return conn.NewSourceResult(meta), nil
		}

		if r.scanner.PollingEnabled() {
			time.Sleep(PollInterval)
			continue
		}
		return conn.Finished(), nil
	}
}

func (r *Reader) emitData(ctx conn.Context, n int) conn.ReadResult {
	r.total++
	r.pos += int64(n)
	val := offset.ObjectStorePosition(r.total, r.current.key, uint64(r.pos))
	connmetrics.RecordsRead.WithLabelValues(backendName).Inc()
	return conn.Data(ctx, offset.Empty, val)
}

func (r *Reader) readNext() ([]byte, int, error) {
	if r.method == Full {
		b, err := io.ReadAll(r.buf)
		if err != nil {
			return nil, 0, err
		}
		return b, len(b), nil
	}
	line, err := r.buf.ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, 0, err
	}
	if len(line) == 0 {
		return nil, 0, nil
	}
	return line, len(line), nil
}

func (r *Reader) readRecord() ([]string, int, error) {
	line, err := r.buf.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, 0, err
	}
	if len(line) == 0 {
		return nil, 0, nil
	}
	n := len(line)
	line = strings.TrimRight(line, "\r\n")
	return strings.Split(line, string(r.delim)), n, nil
}
