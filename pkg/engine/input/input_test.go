package input

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapToIntent(t *testing.T) {
	cases := []struct {
		code string
		want Action
	}{
		{"space", ActionSpawn},
		{"mouse_left", ActionMove},
		{"mouse_right", ActionDig},
		{"q", ActionQuit},
		{"+", ActionZoomIn},
		{"nonsense", ActionNone},
	}
	for _, c := range cases {
		got := MapToIntent(DebouncedInput{Code: c.code})
		assert.Equal(t, ActionName(c.want), ActionName(got.Action), "MapToIntent(%q)", c.code)
	}
}

func TestParseCommand(t *testing.T) {
	cases := []struct {
		line   string
		action Action
		args   []int
	}{
		{"spawn", ActionSpawn, nil},
		{"move 1 4 7", ActionMove, []int{1, 4, 7}},
		{"  DIG 2 3 ", ActionDig, []int{2, 3}},
		{"wait", ActionWait, nil},
		{"wait 250", ActionWait, []int{250}},
		{"q", ActionQuit, nil},
	}
	for _, c := range cases {
		t.Run(c.line, func(t *testing.T) {
			cmd, err := ParseCommand(c.line)
			require.NoError(t, err)
			assert.Equal(t, ActionName(c.action), ActionName(cmd.Action))
			if len(c.args) == 0 {
				assert.Empty(t, cmd.Args)
			} else {
				assert.Equal(t, c.args, cmd.Args)
			}
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	for _, line := range []string{"", "fly", "dig 1", "move a b c", "wait 1 2", "+"} {
		_, err := ParseCommand(line)
		assert.ErrorIs(t, err, ErrBadCommand, "ParseCommand(%q)", line)
	}
}

func TestReader_SkipsBlankLines(t *testing.T) {
	r := NewReader(strings.NewReader("spawn\n\n  \ndig 1 2\n"))

	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, ActionSpawn, first.Action)

	second, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, ActionDig, second.Action)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestSetSingleBinding_KeepsMouse(t *testing.T) {
	SetSingleBinding(ActionDig, "x")
	defer SetSingleBinding(ActionDig, "dig")

	assert.Equal(t, ActionDig, MapToIntent(DebouncedInput{Code: "x"}).Action)
	assert.Equal(t, ActionNone, MapToIntent(DebouncedInput{Code: "d"}).Action, "old key still bound")
	assert.Equal(t, ActionDig, MapToIntent(DebouncedInput{Code: "mouse_right"}).Action)
}
