package signal

import (
	"strings"
	"testing"

	"github.com/debtengine/debtengine/schema"
	"github.com/stretchr/testify/assert"
)

func TestDetectSmellsTodoComments(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		lang     schema.Language
		expected int
	}{
		{
			name:     "todo in line comment",
			source:   "// TODO: refactor this\nwork()\n",
			lang:     schema.LangGo,
			expected: 1,
		},
		{
			name:     "fixme in python comment",
			source:   "# fixme handle unicode\nx = 1\n",
			lang:     schema.LangPython,
			expected: 1,
		},
		{
			name:     "lowercase xxx counts",
			source:   "// xxx revisit\n",
			lang:     schema.LangTypeScript,
			expected: 1,
		},
		{
			name:     "hack in block comment line",
			source:   "/* HACK around driver bug */\n",
			lang:     schema.LangJavaScript,
			expected: 1,
		},
		{
			name:     "todo outside a comment is ignored",
			source:   "callTodoHandler()\n",
			lang:     schema.LangGo,
			expected: 0,
		},
		{
			name:     "plain comment",
			source:   "// loads the config\n",
			lang:     schema.LangGo,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			smells := DetectSmells(tt.source, tt.lang, CountLines(tt.source))
			assert.Equal(t, tt.expected, smells.TodoFixme)
		})
	}
}

func TestDetectSmellsGodFunction(t *testing.T) {
	var b strings.Builder
	b.WriteString("func big() {\n")
	for range 65 {
		b.WriteString("\twork()\n")
	}
	b.WriteString("}\n")

	smells := DetectSmells(b.String(), schema.LangGo, 67)
	assert.Equal(t, 1, smells.GodFunction)

	short := "func small() {\n\twork()\n}\n"
	smells = DetectSmells(short, schema.LangGo, 3)
	assert.Equal(t, 0, smells.GodFunction)
}

func TestDetectSmellsDeepNesting(t *testing.T) {
	t.Run("brace language counts indent of the raw line", func(t *testing.T) {
		source := "func f() {\n" +
			strings.Repeat(" ", 20) + "return x\n" +
			"}\n"
		smells := DetectSmells(source, schema.LangGo, 3)
		assert.Equal(t, 1, smells.DeepNesting)
	})

	t.Run("shallow indent does not count", func(t *testing.T) {
		source := "func f() {\n    return x\n}\n"
		smells := DetectSmells(source, schema.LangGo, 3)
		assert.Equal(t, 0, smells.DeepNesting)
	})

	t.Run("python uses four-space levels", func(t *testing.T) {
		source := "def f():\n" +
			strings.Repeat(" ", 24) + "pass\n"
		smells := DetectSmells(source, schema.LangPython, 2)
		assert.Equal(t, 1, smells.DeepNesting)
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		source := "def f():\n\n\n    pass\n"
		smells := DetectSmells(source, schema.LangPython, 4)
		assert.Equal(t, 0, smells.DeepNesting)
	})
}

func TestDetectSmellsLongParamList(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		lang     schema.Language
		expected int
	}{
		{
			name:     "six parameters",
			source:   "func load(a, b, c, d, e, f int) {\n}\n",
			lang:     schema.LangGo,
			expected: 1,
		},
		{
			name:     "five parameters is fine",
			source:   "func load(a, b, c, d, e int) {\n}\n",
			lang:     schema.LangGo,
			expected: 0,
		},
		{
			name:     "typescript function",
			source:   "function render(a, b, c, d, e, f, g) {\n}\n",
			lang:     schema.LangTypeScript,
			expected: 1,
		},
		{
			name:     "python def",
			source:   "def setup(a, b, c, d, e, f):\n    pass\n",
			lang:     schema.LangPython,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			smells := DetectSmells(tt.source, tt.lang, CountLines(tt.source))
			assert.Equal(t, tt.expected, smells.LongParamList)
		})
	}
}

func TestDetectSmellsMagicNumbers(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		lang     schema.Language
		expected int
	}{
		{
			name:     "bare integer",
			source:   "x := 42\n",
			lang:     schema.LangGo,
			expected: 1,
		},
		{
			name:     "const declaration is exempt",
			source:   "const limit = 42\n",
			lang:     schema.LangGo,
			expected: 0,
		},
		{
			name:     "let declaration is exempt",
			source:   "let retries = 7;\n",
			lang:     schema.LangJavaScript,
			expected: 0,
		},
		{
			name:     "allowed numbers",
			source:   "a = 0\nb = 1\nc = -1\nd = 2\ne = 100\n",
			lang:     schema.LangPython,
			expected: 0,
		},
		{
			name:     "float literal",
			source:   "ratio = 3.14\n",
			lang:     schema.LangPython,
			expected: 1,
		},
		{
			name:     "number in comment is ignored",
			source:   "// retry 42 times\n",
			lang:     schema.LangGo,
			expected: 0,
		},
		{
			name:     "version string does not parse",
			source:   "print(\"v1.2.3\")\n",
			lang:     schema.LangPython,
			expected: 0,
		},
		{
			name:     "two magic numbers on one line",
			source:   "resize(640, 480)\n",
			lang:     schema.LangGo,
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			smells := DetectSmells(tt.source, tt.lang, CountLines(tt.source))
			assert.Equal(t, tt.expected, smells.MagicNumber)
		})
	}
}

func TestDetectSmellsEmptyCatch(t *testing.T) {
	t.Run("empty catch block", func(t *testing.T) {
		source := "try {\n  risky();\n} catch (err) {\n}\n"
		smells := DetectSmells(source, schema.LangTypeScript, 4)
		assert.Equal(t, 1, smells.EmptyCatch)
	})

	t.Run("except with pass", func(t *testing.T) {
		source := "try:\n    risky()\nexcept ValueError:\n    pass\n"
		smells := DetectSmells(source, schema.LangPython, 4)
		assert.Equal(t, 1, smells.EmptyCatch)
	})

	t.Run("handled catch", func(t *testing.T) {
		source := "try {\n  risky();\n} catch (err) {\n  log(err);\n}\n"
		smells := DetectSmells(source, schema.LangTypeScript, 5)
		assert.Equal(t, 0, smells.EmptyCatch)
	})
}

func TestDetectSmellsTotal(t *testing.T) {
	source := "// TODO: split this up\nfunc f(a, b, c, d, e, f int) {\n\tx := 42\n}\n"
	smells := DetectSmells(source, schema.LangGo, 4)

	assert.Equal(t, 1, smells.TodoFixme)
	assert.Equal(t, 1, smells.LongParamList)
	assert.Equal(t, 1, smells.MagicNumber)
	assert.Equal(t, smells.GodFunction+smells.DeepNesting+smells.LongParamList+
		smells.MagicNumber+smells.EmptyCatch+smells.TodoFixme, smells.Total)
}

func TestSmellScore(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		loc      int
		expected float64
	}{
		{"empty file", 0, 0, 0.0},
		{"clean file", 0, 500, 0.0},
		{"one smell in a thousand lines", 1, 1000, 5.0},
		{"one smell per fifty lines saturates", 1, 50, 100.0},
		{"above saturation clamps", 10, 100, 100.0},
		{"half saturation", 1, 100, 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := SmellScore(FileSmells{Total: tt.total}, tt.loc)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}
}

func TestCountParameters(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected int
	}{
		{"no parens", "func f", 0},
		{"empty parens", "func f()", 0},
		{"one param", "func f(a int)", 1},
		{"three params", "def g(a, b, c):", 3},
		{"nested call still counts commas", "func h(a, fn(b, c))", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, countParameters(tt.line))
		})
	}
}

func TestNestingLevel(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected int
	}{
		{"no indent", "x", 0},
		{"two spaces", "  x", 1},
		{"four spaces", "    x", 1},
		{"eight spaces", "        x", 2},
		{"twenty spaces", strings.Repeat(" ", 20) + "x", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nestingLevel(tt.line))
		})
	}
}
