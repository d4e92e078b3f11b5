package render

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mwtan/jelconsole/internal/script/interpreter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer() (*Renderer, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return New(buf, Options{Color: false}), buf
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestRenderHelp(t *testing.T) {
	r, buf := newTestRenderer()
	r.RenderHelp()

	expected := "" +
		"  <expression> - evaluate an expression\n" +
		"  show         - display variables in the Map\n" +
		"  remove <var> - remove a variable from the Map\n" +
		"  quit         - exit\n" +
		"  help         - display this help\n"
	assert.Equal(t, expected, buf.String())
}

func TestRenderShow_Empty(t *testing.T) {
	r, buf := newTestRenderer()
	r.RenderShow(interpreter.NewEnvironment())
	assert.Equal(t, "Empty\n", buf.String())
}

func TestRenderShow_Aligned(t *testing.T) {
	env := interpreter.NewEnvironment()
	env.Set("x", &interpreter.IntValue{Value: 42})
	env.Set("name", &interpreter.StringValue{Value: "Ada"})
	env.Set("ok", &interpreter.BoolValue{Value: true})

	r, buf := newTestRenderer()
	r.RenderShow(env)

	// longest name "name" (4) -> 5 columns, longest type "string" (6) -> 7 columns
	assert.Equal(t, []string{
		"name string Ada",
		"ok   bool   true",
		"x    int    42",
	}, lines(buf))
}

func TestRenderShow_PaddingProperty(t *testing.T) {
	env := interpreter.NewEnvironment()
	env.Set("a", &interpreter.NullValue{})
	env.Set("longer_name", &interpreter.FloatValue{Value: 1.5})
	env.Set("xs", &interpreter.ListValue{Elements: []interpreter.Value{&interpreter.IntValue{Value: 1}}})

	r, buf := newTestRenderer()
	r.RenderShow(env)

	maxName := len("longer_name") + 1
	maxType := len("float") + 1
	for _, line := range lines(buf) {
		require.Greater(t, len(line), maxName+maxType)
		// name column ends with at least one space, type column starts right after
		assert.Equal(t, " ", string(line[maxName-1]), "line %q", line)
		assert.NotEqual(t, " ", string(line[maxName]), "line %q", line)
		assert.Equal(t, " ", string(line[maxName+maxType-1]), "line %q", line)
		assert.NotEqual(t, " ", string(line[maxName+maxType]), "line %q", line)
	}
}

func TestRenderShow_Deterministic(t *testing.T) {
	env := interpreter.NewEnvironment()
	for _, name := range []string{"q", "b", "z", "a", "m"} {
		env.Set(name, &interpreter.IntValue{Value: 1})
	}

	r1, buf1 := newTestRenderer()
	r1.RenderShow(env)
	r2, buf2 := newTestRenderer()
	r2.RenderShow(env)

	assert.Equal(t, buf1.String(), buf2.String())
	assert.True(t, strings.HasPrefix(buf1.String(), "a "))
}

func TestRenderShow_WideNames(t *testing.T) {
	env := interpreter.NewEnvironment()
	env.Set("日本", &interpreter.IntValue{Value: 1})
	env.Set("ab", &interpreter.IntValue{Value: 2})

	r, buf := newTestRenderer()
	r.RenderShow(env)

	// "日本" is four columns wide, so "ab" gets three spaces of padding
	assert.Equal(t, []string{
		"ab   int 2",
		"日本 int 1",
	}, lines(buf))
}

func TestRenderResult(t *testing.T) {
	t.Run("prints value", func(t *testing.T) {
		r, buf := newTestRenderer()
		r.RenderResult(&interpreter.IntValue{Value: 3})
		assert.Equal(t, "3\n", buf.String())
	})

	t.Run("nothing for no value", func(t *testing.T) {
		r, buf := newTestRenderer()
		r.RenderResult(nil)
		r.RenderResult(&interpreter.NullValue{})
		assert.Empty(t, buf.String())
	})
}

func TestRenderError(t *testing.T) {
	r, buf := newTestRenderer()
	r.RenderError(errors.New("division by zero\nat line 1"))
	assert.Equal(t, "division by zero at line 1\n", buf.String())
}

func TestRenderSystemMessage(t *testing.T) {
	r, buf := newTestRenderer()
	r.RenderSystemMessage("config: bad value")
	assert.Equal(t, "→ config: bad value\n", buf.String())
}

func TestRendererFlushesBufferedWriter(t *testing.T) {
	var out bytes.Buffer
	bw := bufio.NewWriterSize(&out, 4096)
	r := New(bw, Options{})

	r.RenderResult(&interpreter.StringValue{Value: "hello"})
	assert.Equal(t, "hello\n", out.String())

	r.RenderShow(interpreter.NewEnvironment())
	assert.Equal(t, "hello\nEmpty\n", out.String())
}
