package cli

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/nxcube"
	"github.com/SeamusWaldron/nxcube/internal/config"
	"github.com/SeamusWaldron/nxcube/internal/device"
	"github.com/SeamusWaldron/nxcube/internal/eventlog"
	"github.com/SeamusWaldron/nxcube/internal/protocol"
	"github.com/SeamusWaldron/nxcube/internal/recorder"
	"github.com/SeamusWaldron/nxcube/internal/render"
	"github.com/SeamusWaldron/nxcube/internal/storage"
)

var (
	playDevice bool
	playScheme string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive puzzle",
	Long: `Start an interactive TUI showing the puzzle as a face net.

Keyboard shortcuts:
  R L U D F B   - Turn an outer face
  M E S         - Turn a middle slice (odd sizes, not in void mode)
  space         - Shuffle
  backspace     - Reset to solved
  tab           - Cycle mode: standard, mirror, void
  1-9           - Rebuild at that size
  c             - Cycle sticker scheme
  esc/ctrl+c    - Quit

With --device, turns made on a connected GoCube are mirrored on screen.
Every action is journaled unless recording is disabled with --record=false.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	f := playCmd.Flags()
	f.BoolVar(&playDevice, "device", false, "Connect to a GoCube and mirror its turns")
	f.StringVar(&playScheme, "scheme", "color", "Sticker scheme: color, letters or mono")
	f.Bool(config.KeyRecord, true, "Journal the session")
	f.Int(config.KeySteps, nxcube.DefaultSteps, "Animation frames per quarter turn")
	f.Int(config.KeyFPS, 30, "Frames per second")
	f.Int(config.KeyShuffle, nxcube.DefaultShuffleTurns, "Turns per shuffle")
	f.Uint64(config.KeySeed, 0, "Shuffle seed (0 seeds from the clock)")
	rootCmd.AddCommand(playCmd)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	modeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	turnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const recentTurns = 12

type tickMsg time.Time

type deviceMsg struct {
	msg *protocol.Message
}

type connectedMsg struct {
	name, id string
}

type connectErrMsg struct {
	err error
}

type playModel struct {
	ctrl      *nxcube.Controller
	session   *recorder.Session
	stateFile *recorder.StateFile
	elog      *eventlog.Logger
	frame     time.Duration
	scheme    render.Scheme

	client  *device.Client
	target  *device.ScanResult
	msgChan chan *protocol.Message

	connected  bool
	deviceName string
	battery    int

	recent   []string
	notice   string
	err      error
	quitting bool
	logPath  string
}

func runPlay(cmd *cobra.Command, args []string) error {
	scheme, err := render.ParseScheme(playScheme)
	if err != nil {
		return err
	}

	m := &playModel{
		frame:   time.Second / time.Duration(cfg.FPS),
		scheme:  scheme,
		battery: -1,
		msgChan: make(chan *protocol.Message, 100),
		elog:    eventlog.New(),
	}

	if sf, err := openState(); err == nil {
		m.stateFile = sf
	} else {
		logger.Warn("state file unavailable", zap.Error(err))
	}

	if playDevice {
		client, results, err := scanForCube(cmd.OutOrStdout(), 5*time.Second)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return device.ErrDeviceNotFound
		}
		lastID := ""
		if m.stateFile != nil {
			lastID = m.stateFile.State().LastDeviceID
		}
		target := pickDevice(results, lastID)
		m.client = client
		m.target = &target
	}

	var db *storage.DB
	if cfg.Record {
		if db, err = openDB(); err != nil {
			return err
		}
		defer db.Close()
		m.session = recorder.NewSession(db, m.stateFile, logger)
	}

	if err := m.elog.Start(cfg.LogDir); err != nil {
		logger.Warn("could not start event log", zap.Error(err))
	}
	defer m.elog.Close()

	if err := m.setup(db); err != nil {
		return err
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return err
	}
	if m.err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Last error: %v\n", m.err)
	}
	if m.logPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Event log: %s\n", m.logPath)
	}
	return nil
}

// setup builds the controller, resuming an unfinished session if the state
// file names one, then starts journaling.
func (m *playModel) setup(db *storage.DB) error {
	n, opts := cfg.Size, cfg.Options()

	var resume *storage.Session
	var actions []storage.Action
	if db != nil && m.stateFile != nil && m.stateFile.ActiveSessionID() != "" {
		s, err := storage.NewSessionRepository(db).Get(m.stateFile.ActiveSessionID())
		if err == nil && s != nil && s.EndedAt == nil {
			if mode, err := nxcube.ParseMode(s.Mode); err == nil {
				if actions, err = storage.NewActionRepository(db).ListBySession(s.SessionID); err == nil {
					resume = s
					n = s.Size
					opts = append(opts, nxcube.WithMode(mode))
				}
			}
		}
	}

	ctrl, err := nxcube.NewController(n, opts...)
	if err != nil {
		return err
	}
	m.ctrl = ctrl

	if resume != nil {
		if err := restore(ctrl, actions); err != nil {
			logger.Warn("could not restore session", zap.String("session", resume.SessionID), zap.Error(err))
			resume = nil
			n = cfg.Size
			if err := ctrl.Rebuild(cfg.Size, cfg.Mode); err != nil {
				return err
			}
		}
	}

	if m.session != nil {
		deviceName, deviceID := "", ""
		if m.target != nil {
			deviceName, deviceID = m.target.Name, m.target.ID
		}
		if resume != nil {
			if err := m.session.Resume(resume.SessionID); err != nil {
				return err
			}
			m.notice = fmt.Sprintf("Resumed session %s", resume.SessionID[:8])
		} else if _, err := m.session.Start(n, ctrl.Puzzle().Mode(), "", deviceName, deviceID, version); err != nil {
			return err
		}
		m.elog.SetSession(m.session.SessionID(), deviceName)
	}

	m.wire()
	return nil
}

// restore replays journaled actions into a controller before callbacks
// are attached.
func restore(ctrl *nxcube.Controller, actions []storage.Action) error {
	for _, a := range actions {
		switch a.Kind {
		case storage.KindTurn, storage.KindShuffleTurn:
			if a.Rotation == nil {
				return fmt.Errorf("action %d has no rotation", a.ActionIndex)
			}
			if err := ctrl.Request(nxcube.Trigger{Rotation: *a.Rotation}); err != nil {
				return err
			}
			ctrl.Flush()
		case storage.KindReset:
			ctrl.Reset()
		case storage.KindRebuild:
			mode, err := nxcube.ParseMode(a.Mode)
			if err != nil {
				return err
			}
			if err := ctrl.Rebuild(a.Size, mode); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *playModel) wire() {
	m.ctrl.SetTurnCallback(func(ev nxcube.TurnEvent) {
		m.elog.LogTurn(ev)
		name := ev.Rotation.String()
		if ev.Key != 0 {
			name = string(ev.Key)
		}
		m.pushRecent(name)
		if m.session != nil {
			if err := m.session.RecordTurn(ev); err != nil {
				m.fail("record turn", err)
			}
		}
	})
	m.ctrl.SetShuffleCallback(func(turns []nxcube.Rotation) {
		m.elog.LogShuffle(turns)
		m.recent = nil
		m.notice = fmt.Sprintf("Shuffled %d turns", len(turns))
		if m.session != nil {
			if err := m.session.RecordShuffle(turns); err != nil {
				m.fail("record shuffle", err)
			}
		}
	})
	m.ctrl.SetResetCallback(func() {
		m.elog.LogReset()
		m.recent = nil
		m.notice = "Reset"
		if m.session != nil {
			if err := m.session.RecordReset(); err != nil {
				m.fail("record reset", err)
			}
		}
		if m.client != nil && m.connected {
			if err := m.client.ResetSolved(); err != nil {
				m.fail("reset device", err)
			}
		}
	})
	m.ctrl.SetRebuildCallback(func(n int, mode nxcube.Mode) {
		m.elog.LogRebuild(n, mode)
		m.recent = nil
		m.notice = fmt.Sprintf("Rebuilt %dx%dx%d %s", n, n, n, mode)
		if m.session != nil {
			if err := m.session.RecordRebuild(n, mode); err != nil {
				m.fail("record rebuild", err)
			}
		}
		if m.stateFile != nil {
			if err := m.stateFile.SetLastPuzzle(n, mode.String()); err != nil {
				logger.Warn("failed to save last puzzle", zap.Error(err))
			}
		}
	})
}

func (m *playModel) pushRecent(name string) {
	m.recent = append(m.recent, name)
	if len(m.recent) > recentTurns {
		m.recent = m.recent[len(m.recent)-recentTurns:]
	}
}

func (m *playModel) fail(what string, err error) {
	m.err = fmt.Errorf("%s: %w", what, err)
	m.elog.LogError(what, err)
}

func (m *playModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.client != nil {
		cmds = append(cmds, m.connect(), m.listenForMessages())
	}
	return tea.Batch(cmds...)
}

func (m *playModel) tickCmd() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *playModel) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		return deviceMsg{msg: <-m.msgChan}
	}
}

func (m *playModel) connect() tea.Cmd {
	client, target := m.client, *m.target
	return func() tea.Msg {
		client.SetMessageCallback(func(msg *protocol.Message) {
			select {
			case m.msgChan <- msg:
			default:
			}
		})
		if err := client.ConnectToResult(target); err != nil {
			return connectErrMsg{err: fmt.Errorf("connection failed: %w", err)}
		}
		return connectedMsg{name: client.DeviceName(), id: client.DeviceID()}
	}
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tickMsg:
		m.ctrl.Tick()
		if m.client != nil {
			m.battery = m.client.Battery()
		}
		return m, m.tickCmd()

	case connectedMsg:
		m.connected = true
		m.deviceName = msg.name
		m.notice = "Connected to " + msg.name
		if m.stateFile != nil {
			if err := m.stateFile.SetLastDevice(msg.id, msg.name); err != nil {
				logger.Warn("failed to save last device", zap.Error(err))
			}
		}

	case connectErrMsg:
		m.fail("connect", msg.err)

	case deviceMsg:
		m.handleDevice(msg.msg)
		return m, m.listenForMessages()
	}

	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch key {
	case "esc", "ctrl+c":
		m.quit()
		return tea.Quit

	case " ":
		m.elog.LogKey(key, true)
		if _, err := m.ctrl.Shuffle(); err != nil {
			m.notice = "Busy"
		}
		return nil

	case "backspace":
		m.elog.LogKey(key, true)
		m.ctrl.Reset()
		return nil

	case "tab":
		m.elog.LogKey(key, true)
		if err := m.ctrl.CycleMode(); err != nil {
			m.fail("cycle mode", err)
		}
		return nil

	case "c":
		m.elog.LogKey(key, true)
		m.scheme = m.scheme.Next()
		m.notice = "Scheme: " + m.scheme.String()
		return nil
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		m.elog.LogKey(key, true)
		if err := m.ctrl.Resize(int(key[0] - '0')); err != nil {
			m.fail("resize", err)
		}
		return nil
	}

	if r, size := utf8.DecodeRuneInString(key); size == len(key) && strings.ContainsRune(nxcube.FaceKeys, unicode.ToUpper(r)) {
		accepted := m.ctrl.Press(r)
		m.elog.LogKey(key, accepted)
		return nil
	}

	m.elog.LogKey(key, false)
	return nil
}

func (m *playModel) handleDevice(msg *protocol.Message) {
	if msg == nil {
		return
	}

	var turns []protocol.Turn
	var err error
	if m.session != nil {
		turns, err = m.session.HandleDeviceMessage(msg)
	} else if msg.Type == protocol.TypeRotation {
		turns, err = protocol.DecodeRotation(msg.Payload)
	}

	desc := protocol.TypeName(msg.Type)
	if len(turns) > 0 {
		names := make([]string, len(turns))
		for i, t := range turns {
			names[i] = t.FaceName
			if !t.Clockwise {
				names[i] += "'"
			}
		}
		desc += ": " + strings.Join(names, " ")
	}
	m.elog.LogDevice(msg, desc)

	if err != nil {
		m.fail("device message", err)
	}
	for _, t := range turns {
		if err := m.ctrl.Follow(t.Face, t.Clockwise); err != nil {
			m.fail("follow device turn", err)
		}
	}
}

func (m *playModel) quit() {
	m.quitting = true
	m.ctrl.Flush()
	if m.session != nil && m.session.State() == recorder.StateRecording {
		if err := m.session.End(); err != nil {
			m.fail("end session", err)
		}
	}
	if m.client != nil {
		m.client.Disconnect()
	}
	m.logPath = m.elog.FilePath()
}

func (m *playModel) View() string {
	if m.quitting {
		return ""
	}

	p := m.ctrl.Puzzle()
	n := p.Size()

	var b strings.Builder
	b.WriteString(titleStyle.Render("nxcube"))
	b.WriteString("  ")
	b.WriteString(modeStyle.Render(fmt.Sprintf("%dx%dx%d %s", n, n, n, p.Mode())))
	b.WriteString("\n\n")

	b.WriteString(render.Net(p, m.scheme))
	b.WriteString("\n")

	state := "scrambled"
	if p.IsSolved() {
		state = "solved"
	}
	status := fmt.Sprintf("Turns: %d  %s  %s", m.ctrl.Turns(), render.ProgressBar(m.ctrl.Progress(), 9), state)
	if m.session != nil {
		status += fmt.Sprintf("  Recording %s", m.session.SessionID()[:8])
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")

	if m.client != nil {
		dev := "Connecting..."
		if m.connected {
			dev = "Device: " + m.deviceName
			if m.battery >= 0 {
				dev += fmt.Sprintf(" (%d%%)", m.battery)
			}
		}
		b.WriteString(statusStyle.Render(dev))
		b.WriteString("\n")
	}

	if len(m.recent) > 0 {
		b.WriteString(turnStyle.Render(strings.Join(m.recent, " ")))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(statusStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("RLUDFB MES turn · space shuffle · backspace reset · tab mode · 1-9 size · c colors · esc quit"))
	b.WriteString("\n")
	return b.String()
}
