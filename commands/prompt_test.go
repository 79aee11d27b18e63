package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPrompt(t *testing.T) {
	info := promptInfo{Cwd: "/srv/app", User: "bob", Host: "node1.lan"}

	cases := map[string]struct {
		template string
		want     string
	}{
		"plain":              {`simple_shell$ `, "simple_shell$ "},
		"default":            {`simple_shell:\w$ `, "simple_shell:/srv/app$ "},
		"escaped-backslash":  {`\\w> `, `\w> `},
		"backslash-then-cwd": {`\\\w`, `\/srv/app`},
		"cwd-is-not-escaped": {`\w\\`, `/srv/app\`},
		"basename":           {`\W`, "app"},
		"hosts":              {`\h \H`, "node1 node1.lan"},
		"user":               {`\u`, "bob"},
		"user-host-cwd":      {`\u@\h:\w\$ `, "bob@node1:/srv/app$ "},
		"dollar":             {`\$`, "$"},
		"controls":           {`a\nb\tc\rd\a`, "a\nb\tc\rd\a"},
		"escape":             {`\e[0m`, "\x1b[0m"},
		"markers":            {`\[\e[1m\]x`, "\x1b[1mx"},
		"octal":              {`\101\07\033[01;32m`, "A\a\x1b[01;32m"},
		"octal-stops-at-8":   {`\18`, "\x018"},
		"octal-max-width":    {`\1012`, "A2"},
		"high-octal":         {`\377`, "\xff"},
		"hex":                {`\x4A\x9`, "J\t"},
		"hex-no-digits":      {`\xZ`, `\xZ`},
		"unknown":            {`\q\8`, `\q\8`},
		"trailing":           {`end\`, `end\`},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.want, expandPrompt(tc.template, info))
		})
	}

	t.Run("root", func(t *testing.T) {
		assert.Equal(t, "# ", expandPrompt(`\$ `, promptInfo{Root: true}))
	})
}
