// Command ipc-demo is a two-process broker/worker sample host for the
// IPC channel library.
//
// One binary plays both roles. Run without flags to start the broker:
// it spawns a copy of itself with -worker, connected through an
// inherited pipe pair, and services messages from it. The worker sends
// a series of write-line messages followed by a quit message; the
// broker writes the lines to the configured output file.
//
// Usage:
//
//	ipc-demo [flags]
//
// Flags:
//
//	-config string   Path to a YAML config file (optional)
//	-lines int       Number of lines the worker sends (default 100)
//	-verbose         Enable debug-level console logging
//	-worker          Run as the worker child process (internal)
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/mbxust0901/simple-ipc-lib/pkg/channel"
	"github.com/mbxust0901/simple-ipc-lib/pkg/codec"
	ipclog "github.com/mbxust0901/simple-ipc-lib/pkg/log"
	"github.com/mbxust0901/simple-ipc-lib/pkg/transport"
	"github.com/mbxust0901/simple-ipc-lib/pkg/wire"
)

// Message ids understood by the broker.
const (
	// MsgWriteLine carries [int32 sequence, string8 line].
	MsgWriteLine uint32 = 1

	// MsgQuit carries no arguments and ends the session.
	MsgQuit uint32 = 2

	// MsgAck is the broker's reply to every worker message, carrying
	// [uint32 sequence]. The worker waits for it before sending the
	// next message, which keeps the pipe aligned on frame boundaries:
	// one decoder consumes one message, so unsolicited back-to-back
	// frames would coalesce in a single read.
	MsgAck uint32 = 3
)

// Worker-side pipe ends inherited through ExtraFiles.
const (
	workerReadFd  = 3 // broker -> worker
	workerWriteFd = 4 // worker -> broker
)

var (
	configPath = flag.String("config", "", "Path to a YAML config file")
	lines      = flag.Int("lines", 0, "Number of lines the worker sends (overrides config)")
	verbose    = flag.Bool("verbose", false, "Enable debug-level console logging")
	workerMode = flag.Bool("worker", false, "Run as the worker child process")
)

// errQuit is returned by the quit handler to end the broker loop.
var errQuit = errors.New("quit requested")

func main() {
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *lines > 0 {
		cfg.Lines = *lines
	}
	if *verbose {
		cfg.Verbose = true
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var err error
	if *workerMode {
		err = workerMain(cfg, logger)
	} else {
		err = brokerMain(cfg, logger)
	}
	if err != nil {
		logger.Error("exiting", "error", err)
		os.Exit(1)
	}
}

// pipePair joins one read end and one write end into the
// io.ReadWriteCloser a Stream transport wants.
type pipePair struct {
	r io.ReadCloser
	w io.WriteCloser
}

func (p pipePair) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p pipePair) Write(b []byte) (int, error) { return p.w.Write(b) }

func (p pipePair) Close() error {
	rerr := p.r.Close()
	werr := p.w.Close()
	if rerr != nil {
		return rerr
	}
	return werr
}

// eventLogger builds the protocol event sink from the config: console
// via slog, plus a CBOR capture file when configured.
func eventLogger(cfg Config, logger *slog.Logger) (ipclog.Logger, func(), error) {
	sinks := []ipclog.Logger{ipclog.NewSlogAdapter(logger)}
	cleanup := func() {}

	if cfg.EventLogPath != "" {
		fl, err := ipclog.NewFileLogger(cfg.EventLogPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open event log: %w", err)
		}
		sinks = append(sinks, fl)
		cleanup = func() { _ = fl.Close() }
	}
	return ipclog.NewMultiLogger(sinks...), cleanup, nil
}

// brokerMain spawns the worker child and services its messages.
func brokerMain(cfg Config, logger *slog.Logger) error {
	// broker -> worker pipe
	workerRead, brokerWrite, err := os.Pipe()
	if err != nil {
		return err
	}
	// worker -> broker pipe
	brokerRead, workerWrite, err := os.Pipe()
	if err != nil {
		return err
	}

	self, err := os.Executable()
	if err != nil {
		return err
	}
	args := []string{"-worker", "-lines", fmt.Sprint(cfg.Lines)}
	if cfg.Verbose {
		args = append(args, "-verbose")
	}
	cmd := exec.Command(self, args...)
	cmd.Stderr = os.Stderr
	cmd.ExtraFiles = []*os.File{workerRead, workerWrite} // fds 3, 4
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to spawn worker: %w", err)
	}
	// The child holds its own copies now.
	workerRead.Close()
	workerWrite.Close()

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	defer w.Flush()

	events, cleanup, err := eventLogger(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	pipe := transport.NewStream(pipePair{r: brokerRead, w: brokerWrite})
	pipe.SetLogger(events)
	defer pipe.Close()

	ch := channel.New(pipe, codec.NewCBORCodecWithMaxSize(cfg.MaxMessageSize), channel.Config{
		Logger: events,
		ConnID: pipe.ConnID(),
	})

	received := 0
	dispatch := channel.DispatchMap{
		MsgWriteLine: channel.MsgHandlerFunc(func(_ uint32, ch *channel.Channel, args []wire.Value) error {
			if len(args) != 2 {
				return fmt.Errorf("write-line: want 2 args, got %d", len(args))
			}
			seq, ok := args[0].Int32()
			if !ok {
				return fmt.Errorf("write-line: arg 0 is %s, want INT32", args[0].Tag())
			}
			line, ok := args[1].String8()
			if !ok {
				return fmt.Errorf("write-line: arg 1 is %s, want STRING8", args[1].Tag())
			}
			if _, err := fmt.Fprintf(w, "%d %s\n", seq, line); err != nil {
				return err
			}
			received++
			_, err := ch.Send(MsgAck, []wire.Value{wire.Uint32(uint32(seq))})
			return err
		}),
		MsgQuit: channel.MsgHandlerFunc(func(_ uint32, ch *channel.Channel, _ []wire.Value) error {
			if _, err := ch.Send(MsgAck, nil); err != nil {
				return err
			}
			return errQuit
		}),
	}

	logger.Info("broker started", "worker_pid", cmd.Process.Pid, "output", cfg.OutputPath)
	for {
		err := ch.Receive(dispatch)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return fmt.Errorf("broker receive: %w", err)
		}
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("worker exited: %w", err)
	}
	logger.Info("broker done", "lines_received", received)
	return nil
}

// workerMain connects back to the broker through the inherited pipe fds
// and streams its lines.
func workerMain(cfg Config, logger *slog.Logger) error {
	rf := os.NewFile(workerReadFd, "broker-read")
	wf := os.NewFile(workerWriteFd, "broker-write")
	if rf == nil || wf == nil {
		return fmt.Errorf("worker pipe fds not inherited")
	}
	pair := pipePair{r: rf, w: wf}

	pipe := transport.NewStream(pair)
	defer pipe.Close()

	ch := channel.New(pipe, codec.NewCBORCodec(), channel.Config{ConnID: pipe.ConnID()})

	// Every broker reply is an ack; the worker only cares that it
	// arrived before sending the next message.
	acks := channel.DispatchMap{
		MsgAck: channel.MsgHandlerFunc(func(uint32, *channel.Channel, []wire.Value) error {
			return nil
		}),
	}

	logger.Info("worker started", "lines", cfg.Lines)
	for i := 0; i < cfg.Lines; i++ {
		args := []wire.Value{
			wire.Int32(int32(i)),
			wire.String8("01234567899876543210"),
		}
		if _, err := ch.Send(MsgWriteLine, args); err != nil {
			return fmt.Errorf("worker send: %w", err)
		}
		if err := ch.Receive(acks); err != nil {
			return fmt.Errorf("worker ack: %w", err)
		}
	}
	if _, err := ch.Send(MsgQuit, nil); err != nil {
		return fmt.Errorf("worker quit: %w", err)
	}
	if err := ch.Receive(acks); err != nil {
		return fmt.Errorf("worker quit ack: %w", err)
	}
	logger.Info("worker done")
	return nil
}
