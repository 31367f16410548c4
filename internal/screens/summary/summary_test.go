package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestView_ShowsScoreAndCoins(t *testing.T) {
	s := New("You scored 2 out of 3!", 10, 45)

	out := s.View(100, 30)
	assert.Contains(t, out, "You scored 2 out of 3!")
	assert.Contains(t, out, "+10 coins earned")
	assert.Contains(t, out, "Coin balance: 45")
}

func TestView_HidesCoinsLineWhenNothingEarned(t *testing.T) {
	s := New("You scored 0 out of 3!", 0, 45)

	out := s.View(100, 30)
	assert.False(t, strings.Contains(out, "coins earned"))
	assert.Contains(t, out, "Coin balance: 45")
}

func TestTitle(t *testing.T) {
	s := New("You scored 1 out of 2!", 5, 5)
	assert.Equal(t, "Well Done", s.Title())
}
