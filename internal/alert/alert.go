// Package alert reports failed runs through a file drop directory watched
// by operations, with optional SMTP mail on top. Alerting is best-effort:
// a failure here is logged and never masks the run error itself.
package alert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const historyFile = "alert_history.log"

// Notifier writes alert files and prunes old ones.
type Notifier struct {
	dir      string
	maxFiles int
	mail     *MailConfig
	log      zerolog.Logger
}

// New builds a Notifier. mail may be nil to disable SMTP delivery.
func New(dir string, maxFiles int, mail *MailConfig, log zerolog.Logger) *Notifier {
	return &Notifier{
		dir:      dir,
		maxFiles: maxFiles,
		mail:     mail,
		log:      log.With().Str("component", "alert").Logger(),
	}
}

// RunFailed raises an alert for a failed extractor run.
func (n *Notifier) RunFailed(extractor, kind string, runErr error, at time.Time) {
	host, _ := os.Hostname()
	subject := fmt.Sprintf("Eligibility run failed: %s (%s) on %s", extractor, kind, host)
	body := fmt.Sprintf(
		"The %s eligibility run failed at %s.\n\nFailure kind: %s\nError: %v\n\nCheck the scheduler log for details.\n",
		extractor, at.Format("2006-01-02 15:04:05"), kind, runErr,
	)
	n.send(subject, body, at)
}

func (n *Notifier) send(subject, body string, at time.Time) {
	if path, err := n.writeFile(subject, body, at); err != nil {
		n.log.Error().Err(err).Msg("failed to write alert file")
	} else {
		n.log.Info().Str("path", path).Msg("alert written")
	}
	if err := n.cleanup(); err != nil {
		n.log.Warn().Err(err).Msg("alert cleanup failed")
	}
	if n.mail != nil {
		if err := sendMail(n.mail, subject, body); err != nil {
			n.log.Error().Err(err).Msg("alert mail failed")
		}
	}
}

func (n *Notifier) writeFile(subject, body string, at time.Time) (string, error) {
	if err := os.MkdirAll(n.dir, 0o755); err != nil {
		return "", fmt.Errorf("create alert directory: %w", err)
	}

	slug := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':':
			return '_'
		}
		return r
	}, subject)
	// Truncate on a rune boundary: hostnames and error text are not
	// guaranteed ASCII.
	if r := []rune(slug); len(r) > 40 {
		slug = string(r[:40])
	}

	name := fmt.Sprintf("ALERT_%s_%s.txt", at.Format("20060102_150405"), slug)
	path := filepath.Join(n.dir, name)

	content := fmt.Sprintf("SUBJECT: %s\nTIME: %s\n\n%s", subject, at.Format("2006-01-02 15:04:05"), body)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write alert file: %w", err)
	}

	history := filepath.Join(n.dir, historyFile)
	f, err := os.OpenFile(history, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return path, fmt.Errorf("open alert history: %w", err)
	}
	defer f.Close()
	fmt.Fprintf(f, "%s - %s\n", at.Format("2006-01-02 15:04:05"), subject)

	return path, nil
}

// cleanup keeps at most maxFiles alert files, deleting the oldest first.
func (n *Notifier) cleanup() error {
	if n.maxFiles <= 0 {
		return nil
	}
	entries, err := os.ReadDir(n.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var alerts []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "ALERT_") && strings.HasSuffix(e.Name(), ".txt") {
			alerts = append(alerts, e.Name())
		}
	}
	if len(alerts) <= n.maxFiles {
		return nil
	}

	// Timestamped names sort chronologically.
	sort.Strings(alerts)
	for _, name := range alerts[:len(alerts)-n.maxFiles] {
		if err := os.Remove(filepath.Join(n.dir, name)); err != nil {
			n.log.Warn().Err(err).Str("file", name).Msg("could not remove old alert")
		}
	}
	return nil
}
