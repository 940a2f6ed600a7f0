package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// openLogPager shows the application log in the ov pager. The bubbletea
// program releases the terminal for the pager's lifetime.
func (m *Model) openLogPager() tea.Cmd {
	return func() tea.Msg {
		return pagerClosedMsg{err: m.showLogInPager()}
	}
}

func (m *Model) showLogInPager() error {
	if m.program == nil {
		return fmt.Errorf("program not set")
	}

	content, err := os.ReadFile(m.logPath)
	if err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}
	if len(content) == 0 {
		content = []byte("log is empty\n")
	}

	if err := m.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Give ov a moment to fully exit before taking the terminal back.
		time.Sleep(100 * time.Millisecond)
		_ = m.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(string(content)))
	if err != nil {
		return err
	}

	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	return root.Run()
}
