package s3thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type memoryBucket struct {
	keys    []ObjectKey
	objects map[ObjectKey][]byte
	types   map[ObjectKey]string
}

// memoryStorage is a Storage kept in maps. Every call is appended to calls.
type memoryStorage struct {
	buckets map[string]*memoryBucket
	calls   []string

	listErrAt int // fail the listing call with this index, 1-based
	getErr    map[ObjectKey]error
	putErr    map[ObjectKey]error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{
		buckets: make(map[string]*memoryBucket),
		getErr:  make(map[ObjectKey]error),
		putErr:  make(map[ObjectKey]error),
	}
}

func (m *memoryStorage) bucket(name string) *memoryBucket {
	b, ok := m.buckets[name]
	if !ok {
		b = &memoryBucket{
			objects: make(map[ObjectKey][]byte),
			types:   make(map[ObjectKey]string),
		}
		m.buckets[name] = b
	}
	return b
}

func (m *memoryStorage) add(bucket string, key ObjectKey, body []byte) {
	b := m.bucket(bucket)
	if _, ok := b.objects[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.objects[key] = body
}

func (m *memoryStorage) countCalls(prefix string) int {
	n := 0
	for _, c := range m.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (m *memoryStorage) LocateBucket(ctx context.Context, bucket string) (string, error) {
	m.calls = append(m.calls, "locate:"+bucket)
	if _, ok := m.buckets[bucket]; !ok {
		return "", errors.Errorf("NoSuchBucket: %s", bucket)
	}
	return "ap-northeast-1", nil
}

func (m *memoryStorage) ListObjects(ctx context.Context, bucket string, pageSize int, token *string) (*ObjectPage, error) {
	start := 0
	if token != nil {
		var err error
		start, err = strconv.Atoi(*token)
		if err != nil {
			return nil, err
		}
		m.calls = append(m.calls, "list:"+bucket+":"+*token)
	} else {
		m.calls = append(m.calls, "list:"+bucket)
	}
	if m.listErrAt > 0 && m.countCalls("list:") == m.listErrAt {
		return nil, errors.New("InternalError")
	}

	b, ok := m.buckets[bucket]
	if !ok {
		return nil, errors.Errorf("NoSuchBucket: %s", bucket)
	}
	end := start + pageSize
	if end > len(b.keys) {
		end = len(b.keys)
	}
	page := &ObjectPage{Truncated: end < len(b.keys)}
	for _, key := range b.keys[start:end] {
		page.Items = append(page.Items, ObjectSummary{Key: key, Size: int64(len(b.objects[key]))})
	}
	if page.Truncated {
		next := strconv.Itoa(end)
		page.ContinuationToken = &next
	}
	return page, nil
}

func (m *memoryStorage) GetObject(ctx context.Context, bucket string, key ObjectKey) ([]byte, error) {
	m.calls = append(m.calls, "get:"+key)
	if err := m.getErr[key]; err != nil {
		return nil, err
	}
	b, ok := m.buckets[bucket]
	if !ok {
		return nil, errors.Errorf("NoSuchBucket: %s", bucket)
	}
	body, ok := b.objects[key]
	if !ok {
		return nil, errors.Errorf("NoSuchKey: %s", key)
	}
	return body, nil
}

func (m *memoryStorage) PutObject(ctx context.Context, bucket string, key ObjectKey, body []byte, contentType string) error {
	m.calls = append(m.calls, "put:"+key)
	if err := m.putErr[key]; err != nil {
		return err
	}
	m.add(bucket, key, body)
	m.bucket(bucket).types[key] = contentType
	return nil
}

func (m *memoryStorage) puts() []ObjectKey {
	keys := []ObjectKey{}
	for _, c := range m.calls {
		if strings.HasPrefix(c, "put:") {
			keys = append(keys, strings.TrimPrefix(c, "put:"))
		}
	}
	return keys
}

func testImage(t *testing.T, format imaging.Format, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 40, B: 90, A: 255})
	buf := &bytes.Buffer{}
	require.NoError(t, imaging.Encode(buf, img, format))
	return buf.Bytes()
}

func testKeys(prefix string, n int, ext string) []ObjectKey {
	keys := make([]ObjectKey, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("%s%03d.%s", prefix, i, ext)
	}
	return keys
}
