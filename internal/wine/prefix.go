package wine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hugo-lorenzo-mato/winepfx/internal/core"
)

// Environment variables read by Wine.
const (
	EnvPrefix      = "WINEPREFIX"
	EnvLibraryPath = "DYLD_FALLBACK_LIBRARY_PATH"
	EnvESync       = "ESYNC"
	EnvMSync       = "MSYNC"
	EnvDebug       = "WINEDEBUG"
)

// StartToken is the argument that routes a program through Wine's start.exe.
const StartToken = "start"

// KillFlag asks wineserver to kill every process in the prefix.
const KillFlag = "-k"

// Executable locations relative to the prefix root.
const (
	wineRelPath       = "bin/wine"
	wineserverRelPath = "bin/wineserver"
	regeditRelPath    = "bin/regedit"
)

// Executables are the runtime programs of a prefix.
type Executables struct {
	Wine       string
	Wineserver string
	Regedit    string
}

// ExecutablesAt derives the executable paths under root.
func ExecutablesAt(root string) Executables {
	return Executables{
		Wine:       filepath.Join(root, filepath.FromSlash(wineRelPath)),
		Wineserver: filepath.Join(root, filepath.FromSlash(wineserverRelPath)),
		Regedit:    filepath.Join(root, filepath.FromSlash(regeditRelPath)),
	}
}

// Settings toggles optional Wine features. ESync and MSync are alternative
// synchronization backends; enabling both is passed through unchanged.
type Settings struct {
	ESync bool
	MSync bool
}

// Prefix is a Wine installation root. It is immutable after New and safe for
// concurrent use.
type Prefix struct {
	root        string
	libraryPath string
	wine        string
	wineserver  string
	regedit     string
	settings    Settings
}

// New creates a Prefix rooted at root. libraryPaths are joined with ':' in
// order to form the dynamic library search path. New fails when root has no
// bin/wine regular file.
func New(root string, libraryPaths []string, settings Settings) (*Prefix, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, core.ErrValidation(core.CodeInvalidPrefix, fmt.Sprintf("resolving prefix %s", root)).
			WithCause(err)
	}

	exes := ExecutablesAt(abs)
	info, err := os.Stat(exes.Wine)
	if err != nil {
		return nil, core.ErrInvalidPrefix(abs, exes.Wine).WithCause(err)
	}
	if !info.Mode().IsRegular() {
		return nil, core.ErrInvalidPrefix(abs, exes.Wine)
	}

	return &Prefix{
		root:        abs,
		libraryPath: strings.Join(libraryPaths, ":"),
		wine:        exes.Wine,
		wineserver:  exes.Wineserver,
		regedit:     exes.Regedit,
		settings:    settings,
	}, nil
}

// Root returns the absolute prefix root.
func (p *Prefix) Root() string { return p.root }

// LibraryPath returns the joined library search path.
func (p *Prefix) LibraryPath() string { return p.libraryPath }

// Wine returns the path of the wine launcher.
func (p *Prefix) Wine() string { return p.wine }

// Wineserver returns the path of wineserver.
func (p *Prefix) Wineserver() string { return p.wineserver }

// Regedit returns the path of the regedit launcher.
func (p *Prefix) Regedit() string { return p.regedit }

// Settings returns the prefix settings.
func (p *Prefix) Settings() Settings { return p.settings }

// Command assembles the launch of program inside the prefix. When useStart is
// set the program is passed to Wine's start command instead of being run
// directly. rules may be empty, in which case WINEDEBUG is left unset.
func (p *Prefix) Command(useStart bool, program string, rules RuleSet) *Launch {
	env := p.baseEnv()
	if p.settings.ESync {
		env = append(env, EnvVar{Name: EnvESync, Value: "1"})
	}
	if p.settings.MSync {
		env = append(env, EnvVar{Name: EnvMSync, Value: "1"})
	}
	if value, ok := rules.Encode(); ok {
		env = append(env, EnvVar{Name: EnvDebug, Value: value})
	}

	args := make([]string, 0, 2)
	if useStart {
		args = append(args, StartToken)
	}
	args = append(args, program)

	return &Launch{
		Path: p.wine,
		Dir:  p.root,
		Args: args,
		Env:  env,
	}
}

// KillCommand assembles the wineserver invocation that terminates every
// process in the prefix.
func (p *Prefix) KillCommand() *Launch {
	return &Launch{
		Path: p.wineserver,
		Dir:  p.root,
		Args: []string{KillFlag},
		Env:  []EnvVar{{Name: EnvPrefix, Value: p.root}},
	}
}

// KillAll runs wineserver -k and waits for it. A non-zero exit status is
// reported in the Output, not as an error.
func (p *Prefix) KillAll(ctx context.Context) (*Output, error) {
	return p.KillCommand().Output(ctx)
}

// RegeditCommand assembles an import of a .reg file through regedit.
func (p *Prefix) RegeditCommand(regFile string) *Launch {
	return &Launch{
		Path: p.regedit,
		Dir:  p.root,
		Args: []string{regFile},
		Env:  p.baseEnv(),
	}
}

// Import runs regedit on regFile and waits for it.
func (p *Prefix) Import(ctx context.Context, regFile string) (*Output, error) {
	return p.RegeditCommand(regFile).Output(ctx)
}

func (p *Prefix) baseEnv() []EnvVar {
	return []EnvVar{
		{Name: EnvPrefix, Value: p.root},
		{Name: EnvLibraryPath, Value: p.libraryPath},
	}
}
