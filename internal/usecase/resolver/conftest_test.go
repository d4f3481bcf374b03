package resolver

import (
	"context"

	"github.com/medialib/gallerybot/internal/domain/content"
)

// mockReprStore serves a canned representation set and simulates indexing
// by copying entries from built into reps.
type mockReprStore struct {
	reps  map[int64][]content.Representation
	built map[int64][]content.Representation

	buildErr   error
	buildCalls int
}

func newMockReprStore() *mockReprStore {
	return &mockReprStore{
		reps:  map[int64][]content.Representation{},
		built: map[int64][]content.Representation{},
	}
}

func (m *mockReprStore) Representations(_ context.Context, contentID int64) ([]content.Representation, error) {
	return m.reps[contentID], nil
}

func (m *mockReprStore) BuildRepresentations(_ context.Context, contentID int64, _ string) error {
	m.buildCalls++
	if m.buildErr != nil {
		return m.buildErr
	}
	m.reps[contentID] = m.built[contentID]
	return nil
}

type mockCodec struct {
	probeVariant bool
	probeErr     error
	probeCalls   []string

	transcodeOut   []byte
	transcodeErr   error
	transcodeCalls []string
}

func (m *mockCodec) ProbeArithmetic(path string) (bool, error) {
	m.probeCalls = append(m.probeCalls, path)
	return m.probeVariant, m.probeErr
}

func (m *mockCodec) Transcode(path string) ([]byte, error) {
	m.transcodeCalls = append(m.transcodeCalls, path)
	if m.transcodeErr != nil {
		return nil, m.transcodeErr
	}
	return m.transcodeOut, nil
}
