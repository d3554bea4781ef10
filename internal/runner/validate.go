package runner

import "fmt"

// allowedCommands restricts reload commands to an allowlist of common
// development tools, the same security-hardened posture as the teacher's
// validateCustomCommand.
var allowedCommands = map[string]bool{
	"go":      true,
	"npm":     true,
	"yarn":    true,
	"pnpm":    true,
	"make":    true,
	"git":     true,
	"echo":    true,
	"sh":      true,
	"bash":    true,
	"python":  true,
	"python3": true,
}

var safeGitSubcommands = map[string]bool{
	"status": true, "log": true, "show": true, "diff": true,
	"branch": true, "tag": true, "remote": true, "ls-files": true,
	"ls-tree": true, "rev-parse": true,
}

// ValidateCommand checks command against the allowlist and, for commands
// with known-dangerous subcommands (git), restricts those subcommands to
// read-only operations. It does not attempt to sanitize arguments beyond
// that: the process is spawned via exec.Command with an argv array, never
// a shell, so shell metacharacters in args have no special meaning.
func ValidateCommand(command string, args []string) error {
	if command == "" {
		return fmt.Errorf("empty command")
	}
	if !allowedCommands[command] {
		return fmt.Errorf("command %q is not in the reload allowlist", command)
	}
	if command == "git" {
		if len(args) == 0 {
			return fmt.Errorf("git command requires a subcommand")
		}
		if !safeGitSubcommands[args[0]] {
			return fmt.Errorf("git subcommand %q is not allowed (read-only operations only)", args[0])
		}
	}
	return nil
}
