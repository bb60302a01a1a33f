// Package speech plays text aloud through an external TTS command and
// guards dictation capture.
package speech

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Speaker renders text as audio. Speak blocks until playback ends or ctx is
// cancelled.
type Speaker interface {
	Speak(ctx context.Context, text, lang string) error
}

// CommandSpeaker runs an external program per utterance. Args entries may
// contain {lang} and {text} placeholders; when no entry mentions {text} the
// text is appended as the final argument.
type CommandSpeaker struct {
	Name string
	Args []string
}

// Speak runs the command and kills it when ctx is cancelled.
func (c CommandSpeaker) Speak(ctx context.Context, text, lang string) error {
	args := make([]string, 0, len(c.Args)+1)
	hasText := false
	for _, a := range c.Args {
		if strings.Contains(a, "{text}") {
			hasText = true
		}
		a = strings.ReplaceAll(a, "{lang}", voice(lang))
		a = strings.ReplaceAll(a, "{text}", text)
		args = append(args, a)
	}
	if !hasText {
		args = append(args, text)
	}

	out, err := exec.CommandContext(ctx, c.Name, args...).CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w: %s", c.Name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// voice reduces a language hint such as "es-ES" or "ja_JP" to the primary
// subtag espeak understands.
func voice(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	return lang
}

// ParseCommand splits a command line such as "espeak-ng -v {lang}" into a
// CommandSpeaker.
func ParseCommand(line string) (CommandSpeaker, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return CommandSpeaker{}, fmt.Errorf("empty speech command")
	}
	return CommandSpeaker{Name: fields[0], Args: fields[1:]}, nil
}

// candidates are probed in order by Detect.
var candidates = []CommandSpeaker{
	{Name: "espeak-ng", Args: []string{"-v", "{lang}"}},
	{Name: "espeak", Args: []string{"-v", "{lang}"}},
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// Detect picks a speaker: the override command when set, otherwise the
// first installed engine. It returns nil when nothing is available.
func Detect(override string) (Speaker, error) {
	if override != "" {
		cs, err := ParseCommand(override)
		if err != nil {
			return nil, err
		}
		if _, err := lookPath(cs.Name); err != nil {
			return nil, fmt.Errorf("speech command %q not found: %w", cs.Name, err)
		}
		return cs, nil
	}

	list := candidates
	if runtime.GOOS == "darwin" {
		list = append([]CommandSpeaker{{Name: "say"}}, list...)
	}
	for _, cs := range list {
		if _, err := lookPath(cs.Name); err == nil {
			return cs, nil
		}
	}
	return nil, nil
}
