package kvstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// failingBackend returns err from every operation.
type failingBackend struct{ err error }

func (f failingBackend) Get(string) (string, bool, error) { return "", false, f.err }
func (f failingBackend) Set(string, string) error         { return f.err }
func (f failingBackend) Remove(string) error              { return f.err }
func (f failingBackend) Close() error                     { return nil }

func TestStore_KeyIsPrefixed(t *testing.T) {
	require.Equal(t, "mara-gym/exercises", New(NewMemoryBackend(), "").Key("exercises"))
	require.Equal(t, "test/exercises", New(NewMemoryBackend(), "test/").Key("exercises"))
}

func TestStore_ReadAbsentReturnsFallback(t *testing.T) {
	s := New(NewMemoryBackend(), "")

	got, err := Read(s, "exercises", []record{{ID: "fallback"}})
	require.NoError(t, err)
	require.Equal(t, []record{{ID: "fallback"}}, got)
}

func TestStore_ReadEmptyStringReturnsFallback(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set("mara-gym/exercises", ""))
	s := New(backend, "")

	got, err := Read(s, "exercises", []record{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestStore_WriteThenRead(t *testing.T) {
	backend := NewMemoryBackend()
	s := New(backend, "")

	want := []record{{ID: "1", Name: "Hip Thrust"}}
	require.NoError(t, s.Write("exercises", want))

	require.Equal(t, `[{"id":"1","name":"Hip Thrust"}]`, backend.Snapshot()["mara-gym/exercises"])

	got, err := Read(s, "exercises", []record(nil))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestStore_CorruptValueIsRemoved(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set("mara-gym/training-entries", "{not json"))
	s := New(backend, "")

	got, err := Read(s, "training-entries", []record{})
	require.NoError(t, err)
	require.Empty(t, got)

	_, exists, _ := backend.Get("mara-gym/training-entries")
	require.False(t, exists, "corrupt key should be deleted")
}

func TestStore_WrongShapeKeepsKey(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set("mara-gym/exercises", `{"id":"not-an-array"}`))
	s := New(backend, "")

	got, err := Read(s, "exercises", []record{})
	require.NoError(t, err)
	require.Empty(t, got)

	_, exists, _ := backend.Get("mara-gym/exercises")
	require.True(t, exists, "well-formed JSON is not treated as corrupt")
}

func TestStore_ExtraFieldsPassThrough(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set("mara-gym/exercises", `[{"id":"1","name":"Curl","color":"pink"}]`))

	got, err := Read(New(backend, ""), "exercises", []record{})
	require.NoError(t, err)
	require.Equal(t, []record{{ID: "1", Name: "Curl"}}, got)
}

func TestStore_ReadListSkipsOnlyBadElements(t *testing.T) {
	backend := NewMemoryBackend()
	raw := `[{"id":"1","name":"Curl"},{"id":2,"name":"Remo"},{"id":"3","name":"Pec Deck"}]`
	require.NoError(t, backend.Set("mara-gym/exercises", raw))

	got, err := ReadList[record](New(backend, ""), "exercises")
	require.NoError(t, err)
	require.Equal(t, []record{{ID: "1", Name: "Curl"}, {ID: "3", Name: "Pec Deck"}}, got)
	require.Equal(t, raw, backend.Snapshot()["mara-gym/exercises"], "reading never rewrites the key")
}

func TestStore_ReadListNotAnArray(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set("mara-gym/exercises", `{"id":"1"}`))

	got, err := ReadList[record](New(backend, ""), "exercises")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)

	_, exists, _ := backend.Get("mara-gym/exercises")
	require.True(t, exists)
}

func TestStore_ReadListCorruptIsRemoved(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set("mara-gym/exercises", "{not json"))

	got, err := ReadList[record](New(backend, ""), "exercises")
	require.NoError(t, err)
	require.Empty(t, got)

	_, exists, _ := backend.Get("mara-gym/exercises")
	require.False(t, exists)
}

func TestStore_BackendErrorsAreWrapped(t *testing.T) {
	boom := errors.New("disk gone")
	s := New(failingBackend{err: boom}, "")

	_, err := Read(s, "exercises", []record{})
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, s.Write("exercises", []record{}), boom)
	require.ErrorIs(t, s.Remove("exercises"), boom)
}

func TestStore_WriteUnencodable(t *testing.T) {
	s := New(NewMemoryBackend(), "")
	err := s.Write("bad", make(chan int))
	require.Error(t, err)
	require.Contains(t, err.Error(), "encoding bad")
}

func TestStore_Remove(t *testing.T) {
	backend := NewMemoryBackend()
	s := New(backend, "")
	require.NoError(t, s.Write("exercises", []record{}))
	require.NoError(t, s.Remove("exercises"))
	require.Empty(t, backend.Snapshot())
}
