package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"scaffold/internal/apiclient"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// termNotifier prints notifications as styled lines.
type termNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	active int
}

func (n *termNotifier) Success(title, message string) {
	n.print(successStyle.Render("✔ "+title), message)
}

func (n *termNotifier) Error(title, message string) {
	n.print(errorStyle.Render("✘ "+title), message)
}

func (n *termNotifier) print(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.active++
	fmt.Fprintf(n.out, "%s %s\n", title, message)
}

// CloseAll forgets shown notifications; printed lines stay in scrollback.
func (n *termNotifier) CloseAll() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.active = 0
}

type chanNavigator chan string

func (c chanNavigator) Push(path string) {
	select {
	case c <- path:
	default:
	}
}

func (c chanNavigator) await(ctx context.Context) (string, error) {
	select {
	case path := <-c:
		return path, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func printError(w io.Writer, err error) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		err = errors.New(apiErr.Message)
	}
	fmt.Fprintln(w, errorStyle.Render("✘ "+err.Error()))
}

// fileSession persists the signed-in user between CLI runs.
type fileSession struct {
	mu   sync.Mutex
	path string
	user *apiclient.User
}

func openSession() (*fileSession, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}
	s := &fileSession{path: filepath.Join(dir, "scaffold", "session.json")}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var u apiclient.User
	if err := json.Unmarshal(data, &u); err != nil {
		return s, nil
	}
	s.user = &u
	return s, nil
}

func (s *fileSession) User() (apiclient.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return apiclient.User{}, false
	}
	return *s.user, true
}

func (s *fileSession) SetUser(u apiclient.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	s.user = &u
	return nil
}
