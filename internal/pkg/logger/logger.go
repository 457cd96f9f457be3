package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger define a interface para logging estruturado.
// Handlers, serviços e repositórios dependem apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// LogEntry é uma linha de log em JSON.
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Service   string                 `json:"service"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

const serviceName = "golayout"

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
	"fatal": 4,
}

// SimpleLogger escreve uma entrada JSON por linha no writer configurado.
type SimpleLogger struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel int
	exit     func(int)
}

// NewLogger cria um logger que escreve em stderr.
// Níveis desconhecidos caem para "info".
func NewLogger(level string) Logger {
	return NewWriterLogger(level, os.Stderr)
}

// NewWriterLogger cria um logger que escreve em out.
func NewWriterLogger(level string, out io.Writer) *SimpleLogger {
	minLevel, ok := levels[strings.ToLower(level)]
	if !ok {
		minLevel = levels["info"]
	}
	return &SimpleLogger{out: out, minLevel: minLevel, exit: os.Exit}
}

func (l *SimpleLogger) logf(level, msg string, fields map[string]interface{}, err error) {
	if !l.shouldLog(level) {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Service:   serviceName,
		Message:   msg,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	line, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		// Campos não serializáveis: registra só a mensagem.
		entry.Fields = nil
		line, _ = json.Marshal(entry)
	}

	l.mu.Lock()
	l.out.Write(append(line, '\n'))
	l.mu.Unlock()

	if level == "FATAL" {
		l.exit(1)
	}
}

func (l *SimpleLogger) shouldLog(level string) bool {
	target, ok := levels[strings.ToLower(level)]
	return ok && target >= l.minLevel
}

func (l *SimpleLogger) Debug(msg string, fields map[string]interface{}) {
	l.logf("DEBUG", msg, fields, nil)
}

func (l *SimpleLogger) Info(msg string, fields map[string]interface{}) {
	l.logf("INFO", msg, fields, nil)
}

func (l *SimpleLogger) Warn(msg string, fields map[string]interface{}) {
	l.logf("WARN", msg, fields, nil)
}

func (l *SimpleLogger) Error(msg string, err error) {
	l.logf("ERROR", msg, nil, err)
}

func (l *SimpleLogger) Fatal(msg string, err error) {
	l.logf("FATAL", msg, nil, err)
}

// Nop descarta tudo. Útil em testes.
func Nop() Logger { return NewWriterLogger("fatal", io.Discard) }
