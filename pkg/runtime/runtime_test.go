package runtime

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golox-lang/golox/pkg/diagnostics"
	"github.com/golox-lang/golox/pkg/interp"
	"github.com/golox-lang/golox/pkg/token"
)

func newRuntime(t *testing.T) (*Runtime, *bytes.Buffer, *diagnostics.Collector) {
	t.Helper()
	var out bytes.Buffer
	var collector diagnostics.Collector
	rt := New(WithOutput(&out), WithReporter(&collector))
	return rt, &out, &collector
}

func TestRunScript(t *testing.T) {
	rt, out, collector := newRuntime(t)

	err := rt.Run(`
var greeting = "hello";
print greeting + ", world";
print (1 + 2) * 3;
`)
	require.NoError(t, err)
	assert.False(t, collector.HasErrors())
	assert.Equal(t, "hello, world\n9\n", out.String())
}

func TestRunStaticError(t *testing.T) {
	rt, out, collector := newRuntime(t)

	err := rt.Run("print 1 +;")
	require.ErrorIs(t, err, ErrStaticErrors)
	assert.True(t, collector.HasKind(diagnostics.Parse))
	assert.Empty(t, out.String(), "a program with static errors must not execute")
}

func TestRunScanErrorBlocksExecution(t *testing.T) {
	rt, out, collector := newRuntime(t)

	// The statement itself is well-formed; the stray '@' alone must keep it
	// from running.
	err := rt.Run("@\nprint 1;")
	require.ErrorIs(t, err, ErrStaticErrors)
	assert.True(t, collector.HasKind(diagnostics.Lex))
	assert.Empty(t, out.String())
}

func TestRunRuntimeError(t *testing.T) {
	rt, out, collector := newRuntime(t)

	err := rt.Run(`print "first"; print 1 / 0; print "last";`)

	var rtErr *interp.RuntimeError
	require.ErrorAs(t, err, &rtErr)
	assert.Equal(t, "Division by zero.", rtErr.Message)

	require.Len(t, collector.Diags, 1)
	assert.Equal(t, diagnostics.Runtime, collector.Diags[0].Kind)
	assert.Equal(t, 1, collector.Diags[0].Line)

	assert.Equal(t, "first\n", out.String())
}

func TestRunLinePersistsGlobals(t *testing.T) {
	rt, out, _ := newRuntime(t)

	require.NoError(t, rt.RunLine("var n = 1;"))
	require.NoError(t, rt.RunLine("n = n + 41;"))
	require.NoError(t, rt.RunLine("print n;"))

	assert.Equal(t, "42\n", out.String())
}

func TestRunLineEchoesBareExpression(t *testing.T) {
	rt, out, _ := newRuntime(t)

	require.NoError(t, rt.RunLine("var x = 6;"))
	require.NoError(t, rt.RunLine("x * 7"))

	assert.Equal(t, "42\n", out.String())
}

func TestRunLineSurvivesErrors(t *testing.T) {
	rt, out, collector := newRuntime(t)

	require.NoError(t, rt.RunLine("var x = 1;"))

	// A bad line reports and returns, leaving the session usable.
	require.Error(t, rt.RunLine("x +"))
	assert.True(t, collector.HasKind(diagnostics.Parse))

	require.Error(t, rt.RunLine("x / 0"))
	assert.True(t, collector.HasKind(diagnostics.Runtime))

	require.NoError(t, rt.RunLine("print x;"))
	assert.Equal(t, "1\n", out.String())
}

func TestCheck(t *testing.T) {
	rt, _, _ := newRuntime(t)

	assert.Empty(t, rt.Check("var x = 1; print x;"))

	diags := rt.Check("var = 1;\nprint ;")
	require.Len(t, diags, 2)
	assert.Equal(t, diagnostics.Parse, diags[0].Kind)
	assert.Equal(t, diagnostics.Parse, diags[1].Kind)
}

func TestCheckDoesNotExecute(t *testing.T) {
	rt, out, _ := newRuntime(t)

	assert.Empty(t, rt.Check(`print "should not appear";`))
	assert.Empty(t, out.String())
}

func TestDefaultReporterDiscards(t *testing.T) {
	var out bytes.Buffer
	rt := New(WithOutput(&out))

	// No reporter configured; errors still come back to the caller.
	require.ErrorIs(t, rt.Run("print ;"), ErrStaticErrors)
	require.Error(t, rt.Run("print 1 / 0;"))
}

func TestInterpreterAccessor(t *testing.T) {
	rt, _, _ := newRuntime(t)
	require.NoError(t, rt.Run("var seeded = 99;"))

	value, err := rt.Interpreter().Globals().Get(identToken("seeded"))
	require.NoError(t, err)
	assert.Equal(t, interp.NewNumber(99), value)
}

func identToken(name string) token.Token {
	return token.Token{Type: token.Identifier, Lexeme: name, Line: 1}
}
