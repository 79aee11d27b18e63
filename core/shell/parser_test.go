package shell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleSplitStatements() {
	fmt.Printf("%q\n", SplitStatements("ls -l; echo hi"))
	fmt.Printf("%q\n", SplitStatements(" ; ;\t;a"))

	// Output: ["ls -l" " echo hi"]
	// ["a"]
}

func ExampleParseChain() {
	for _, cmd := range ParseChain("false && echo a || echo b") {
		fmt.Printf("%q %q\n", cmd.Name, cmd.Args)
	}

	// Output: "false" ["false"]
	// "&&" ["&&" "echo" "a"]
	// "||" ["||" "echo" "b"]
}

func TestParseCommand(t *testing.T) {
	cases := map[string]struct {
		text string
		want Command
	}{
		"blank": {
			text: "  \t ",
			want: Command{},
		},
		"single": {
			text: "ls",
			want: Command{Name: "ls", Args: []string{"ls"}},
		},
		"collapses-runs": {
			text: "\t ls   -l\t\t/tmp  ",
			want: Command{Name: "ls", Args: []string{"ls", "-l", "/tmp"}},
		},
		"no-quoting": {
			text: `echo "a b"`,
			want: Command{Name: "echo", Args: []string{"echo", `"a`, `b"`}},
		},
		"newline-is-not-blank": {
			text: "echo a\nb",
			want: Command{Name: "echo", Args: []string{"echo", "a\nb"}},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			got := ParseCommand(tc.text)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.Empty(), got.Empty())
		})
	}
}

func TestSplitStatements(t *testing.T) {
	assert.Nil(t, SplitStatements(""))
	assert.Nil(t, SplitStatements(";;; ;"))
	assert.Equal(t, []string{"a", "b ", " c"}, SplitStatements("a;b ; c;"))
}

func TestParseChain(t *testing.T) {
	cases := map[string]struct {
		text string
		want []Command
	}{
		"empty": {
			text: " ",
			want: nil,
		},
		"plain": {
			text: "echo a b",
			want: []Command{
				{Name: "echo", Args: []string{"echo", "a", "b"}},
			},
		},
		"leading-connective": {
			text: "&& ls",
			want: []Command{
				{Name: "&&", Args: []string{"&&", "ls"}},
			},
		},
		"trailing-connective": {
			text: "true &&",
			want: []Command{
				{Name: "true", Args: []string{"true"}},
				{Name: "&&", Args: []string{"&&"}},
			},
		},
		"doubled-connective": {
			text: "a && || b",
			want: []Command{
				{Name: "a", Args: []string{"a"}},
				{Name: "&&", Args: []string{"&&"}},
				{Name: "||", Args: []string{"||", "b"}},
			},
		},
		"attached-operators-are-words": {
			text: "a&&b",
			want: []Command{
				{Name: "a&&b", Args: []string{"a&&b"}},
			},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseChain(tc.text))
		})
	}
}

func TestCommand_Connective(t *testing.T) {
	chain := ParseChain("a && b || c")
	assert.Equal(t, Unconditional, chain[0].Connective())
	assert.Equal(t, AndIf, chain[1].Connective())
	assert.Equal(t, OrIf, chain[2].Connective())
	assert.Equal(t, "||", chain[2].Connective().String())
}

func TestCommand_Effective(t *testing.T) {
	t.Run("with-command", func(t *testing.T) {
		cmd := ParseCommand("&& echo hi")
		effective, ok := cmd.Effective()
		assert.True(t, ok)
		assert.Equal(t, Command{Name: "echo", Args: []string{"echo", "hi"}}, effective)
	})

	t.Run("dangling", func(t *testing.T) {
		_, ok := ParseCommand("||").Effective()
		assert.False(t, ok)
	})
}
