package catalog

import (
	"context"
	"errors"
	"testing"

	"autoparts-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	parts []models.Part
	err   error
}

func (s *stubLoader) LoadParts(ctx context.Context) ([]models.Part, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.parts, nil
}

func sampleParts() []models.Part {
	return []models.Part{
		{ID: "p1", Name: "Brake Pad", PartNumber: "BP-2041", Category: "Brakes", Manufacturer: "Bosch"},
		{ID: "p2", Name: "Oil Filter", PartNumber: "OF-113", Category: "Filters", Manufacturer: "Mann"},
		{ID: "p3", Name: "Spark Plug", PartNumber: "SP-77", Category: "Ignition", Manufacturer: "NGK"},
	}
}

func TestSearchMatchesAcrossFields(t *testing.T) {
	ix := NewIndex(&stubLoader{parts: sampleParts()})
	require.NoError(t, ix.Reload(context.Background()))

	// Matches name and category of the brake pad, nothing else.
	results := ix.Search("brake")
	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].ID)

	// Part number match, case-insensitive.
	results = ix.Search("of-113")
	require.Len(t, results, 1)
	assert.Equal(t, "p2", results[0].ID)

	// Manufacturer match.
	results = ix.Search("ngk")
	require.Len(t, results, 1)
	assert.Equal(t, "p3", results[0].ID)
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	ix := NewIndex(&stubLoader{parts: sampleParts()})
	require.NoError(t, ix.Reload(context.Background()))

	assert.Len(t, ix.Search(""), 3)
	assert.Len(t, ix.Search("   "), 3)
}

func TestSearchNoMatchReturnsEmpty(t *testing.T) {
	ix := NewIndex(&stubLoader{parts: sampleParts()})
	require.NoError(t, ix.Reload(context.Background()))

	results := ix.Search("windshield")
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestReloadFailureKeepsLastSnapshot(t *testing.T) {
	loader := &stubLoader{parts: sampleParts()}
	ix := NewIndex(loader)
	require.NoError(t, ix.Reload(context.Background()))

	loader.err = errors.New("connection refused")
	err := ix.Reload(context.Background())
	require.Error(t, err)

	// Stale-but-available beats empty.
	assert.Len(t, ix.Snapshot(), 3)
}

func TestReloadReplacesSnapshot(t *testing.T) {
	loader := &stubLoader{parts: sampleParts()}
	ix := NewIndex(loader)
	require.NoError(t, ix.Reload(context.Background()))

	loader.parts = sampleParts()[:1]
	require.NoError(t, ix.Reload(context.Background()))
	assert.Len(t, ix.Snapshot(), 1)
}

func TestLoadedDistinguishesEmptyFromCold(t *testing.T) {
	ix := NewIndex(&stubLoader{parts: []models.Part{}})
	assert.False(t, ix.Loaded())

	// An empty shop catalog is still a loaded catalog.
	require.NoError(t, ix.Reload(context.Background()))
	assert.True(t, ix.Loaded())
	assert.Empty(t, ix.Snapshot())
}

func TestFailedFirstReloadLeavesIndexCold(t *testing.T) {
	ix := NewIndex(&stubLoader{err: errors.New("connection refused")})
	require.Error(t, ix.Reload(context.Background()))
	assert.False(t, ix.Loaded())
}

func TestFind(t *testing.T) {
	ix := NewIndex(&stubLoader{parts: sampleParts()})
	require.NoError(t, ix.Reload(context.Background()))

	part, ok := ix.Find("p2")
	require.True(t, ok)
	assert.Equal(t, "Oil Filter", part.Name)

	_, ok = ix.Find("missing")
	assert.False(t, ok)
}
