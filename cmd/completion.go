package cmd

import (
	"fmt"
	"strings"

	"github.com/nibzard/taskmatrix/internal/config"
	"github.com/nibzard/taskmatrix/internal/todo"
)

// subcommands lists the names offered by shell completion.
var subcommands = []string{
	"tui", "add", "ls", "toggle", "mark", "assign", "unassign", "move",
	"rename", "rm", "doctor", "config", "init", "tail", "completion", "version", "help",
}

// globalFlags lists the global flags offered by shell completion.
var globalFlags = []string{
	"--data", "--schema", "--log-dir", "--strict", "--watch", "--log-level",
	"--log-format", "--log-timestamps", "--log-caller", "--help", "--version",
}

// completionCommand prints a completion script for the named shell.
func completionCommand(_ *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskmatrix completion <bash|zsh|fish|powershell>")
	}
	quadrants := []string{"do", "schedule", "delegate", "eliminate"}
	days := make([]string, len(todo.Days))
	for i, d := range todo.Days {
		days[i] = strings.ToLower(string(d))
	}

	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Printf(bashCompletion, strings.Join(subcommands, " "), strings.Join(globalFlags, " "),
			strings.Join(quadrants, " "), strings.Join(days, " "))
	case "zsh":
		fmt.Printf(zshCompletion, strings.Join(subcommands, " "), strings.Join(globalFlags, " "),
			strings.Join(quadrants, " "), strings.Join(days, " "))
	case "fish":
		fmt.Print("# taskmatrix fish completion\n")
		fmt.Print("complete -c taskmatrix -f\n")
		for _, sub := range subcommands {
			fmt.Printf("complete -c taskmatrix -n '__fish_use_subcommand' -a %s\n", sub)
		}
		for _, f := range globalFlags {
			fmt.Printf("complete -c taskmatrix -l %s\n", strings.TrimPrefix(f, "--"))
		}
		fmt.Printf("complete -c taskmatrix -n '__fish_seen_subcommand_from add move' -a '%s'\n", strings.Join(quadrants, " "))
		fmt.Printf("complete -c taskmatrix -n '__fish_seen_subcommand_from assign' -a '%s'\n", strings.Join(days, " "))
		fmt.Print("complete -c taskmatrix -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish powershell'\n")
	case "powershell", "pwsh":
		fmt.Printf(powershellCompletion, quoteList(subcommands), quoteList(globalFlags))
	default:
		return fmt.Errorf("unsupported shell %q (want bash, zsh, fish, or powershell)", args[0])
	}
	return nil
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return strings.Join(quoted, ", ")
}

const bashCompletion = `# taskmatrix bash completion
_taskmatrix() {
    local cur prev words
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    case "$prev" in
        add|move)
            COMPREPLY=($(compgen -W "%[3]s" -- "$cur"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish powershell" -- "$cur"))
            return
            ;;
    esac
    if [[ "${COMP_WORDS[1]}" == "assign" && $COMP_CWORD -eq 3 ]]; then
        COMPREPLY=($(compgen -W "%[4]s" -- "$cur"))
        return
    fi
    if [[ "$cur" == -* ]]; then
        COMPREPLY=($(compgen -W "%[2]s" -- "$cur"))
        return
    fi
    COMPREPLY=($(compgen -W "%[1]s" -- "$cur"))
}
complete -F _taskmatrix taskmatrix
`

const zshCompletion = `#compdef taskmatrix
# taskmatrix zsh completion
_taskmatrix() {
    local -a subcommands flags quadrants days
    subcommands=(%[1]s)
    flags=(%[2]s)
    quadrants=(%[3]s)
    days=(%[4]s)

    if [[ $words[CURRENT] == -* ]]; then
        compadd -a flags
        return
    fi
    case $words[2] in
        add|move)
            (( CURRENT == 3 && $words[2] == add )) && compadd -a quadrants
            (( CURRENT == 4 && $words[2] == move )) && compadd -a quadrants
            ;;
        assign)
            (( CURRENT == 4 )) && compadd -a days
            ;;
        completion)
            compadd bash zsh fish powershell
            ;;
        *)
            (( CURRENT == 2 )) && compadd -a subcommands
            ;;
    esac
}
_taskmatrix "$@"
`

const powershellCompletion = `# taskmatrix PowerShell completion
Register-ArgumentCompleter -Native -CommandName taskmatrix -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    $subcommands = @(%[1]s)
    $flags = @(%[2]s)
    $candidates = if ($wordToComplete -like '-*') { $flags } else { $subcommands }
    $candidates | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`
