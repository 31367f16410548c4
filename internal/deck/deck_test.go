package deck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabula-app/fabula/internal/imagegen"
	"github.com/fabula-app/fabula/internal/story"
)

func testStory(n int) *story.Story {
	s := &story.Story{ID: "test-story", Narrative: "Once upon a time."}
	names := []string{"Abby", "Bo", "Cleo", "Dex", "Ezra"}
	for i := range n {
		s.Characters = append(s.Characters, story.Character{
			Fact:        "Fact " + names[i],
			Name:        names[i],
			ImagePrompt: "A drawing of " + names[i],
		})
	}
	return s
}

func TestNewFromStory_PreservesOrder(t *testing.T) {
	d := NewFromStory(testStory(3))
	require.Equal(t, 3, d.Len())

	cards := d.Cards()
	assert.Equal(t, "Abby", cards[0].Name)
	assert.Equal(t, "Bo", cards[1].Name)
	assert.Equal(t, "Cleo", cards[2].Name)
	for _, c := range cards {
		assert.False(t, c.Illustrated())
	}
}

func TestSetImage_OutOfRange(t *testing.T) {
	d := NewFromStory(testStory(2))
	assert.Error(t, d.SetImage(-1, "x", ""))
	assert.Error(t, d.SetImage(2, "x", ""))
}

func TestSetImage_LateArrivalKeepsPosition(t *testing.T) {
	d := NewFromStory(testStory(3))

	// Images settle in reverse order; the deck order must not move.
	require.NoError(t, d.SetImage(2, "data:image/png;base64,cc", ""))
	require.NoError(t, d.SetImage(0, "data:image/png;base64,aa", ""))
	require.NoError(t, d.SetImage(1, "data:image/png;base64,bb", ""))

	cards := d.Cards()
	assert.Equal(t, "Abby", cards[0].Name)
	assert.Equal(t, "data:image/png;base64,aa", cards[0].ImageURI)
	assert.Equal(t, "Bo", cards[1].Name)
	assert.Equal(t, "data:image/png;base64,bb", cards[1].ImageURI)
	assert.Equal(t, "Cleo", cards[2].Name)
	assert.Equal(t, "data:image/png;base64,cc", cards[2].ImageURI)
}

func TestIllustrateAll_SettlesEveryCard(t *testing.T) {
	d := NewFromStory(testStory(4))
	mock := imagegen.NewMockProvider()

	results := IllustrateAll(context.Background(), d, mock, IllustrateOptions{})
	require.Len(t, results, 4)
	assert.Equal(t, 0, FailedCount(results))
	assert.Equal(t, 4, d.IllustratedCount())
	assert.Equal(t, 4, mock.CallCount())
}

func TestIllustrateAll_FailureIsIsolated(t *testing.T) {
	d := NewFromStory(testStory(3))
	mock := imagegen.NewMockProvider()
	mock.FailNext(errors.New("boom"))

	results := IllustrateAll(context.Background(), d, mock, IllustrateOptions{MaxConcurrent: 1})
	require.Len(t, results, 3)
	assert.Equal(t, 1, FailedCount(results))
	assert.Equal(t, 2, d.IllustratedCount())
}

func TestIllustrate_FailureLeavesCardUntouched(t *testing.T) {
	d := NewFromStory(testStory(1))
	mock := imagegen.NewMockProvider()
	mock.FailNext(errors.New("boom"))

	err := Illustrate(context.Background(), d, mock, 0, "")
	require.Error(t, err)

	card, err := d.Card(0)
	require.NoError(t, err)
	assert.False(t, card.Illustrated())
}

func TestIllustrateAll_SavesToDir(t *testing.T) {
	dir := t.TempDir()
	d := NewFromStory(testStory(2))
	mock := imagegen.NewMockProvider()

	results := IllustrateAll(context.Background(), d, mock, IllustrateOptions{SaveDir: dir})
	assert.Equal(t, 0, FailedCount(results))

	for _, c := range d.Cards() {
		assert.NotEmpty(t, c.ImagePath)
		assert.FileExists(t, c.ImagePath)
	}
}
