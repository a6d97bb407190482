package logger

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LoggerService redirects the process log to rotating files under a
// configured folder. Registered first in services.yaml so every other
// service logs through it.
type LoggerService struct {
	Config        map[string]interface{}
	file          *os.File
	mu            sync.Mutex
	stopCh        chan struct{}
	wg            sync.WaitGroup
	currentLog    string
	maxFileBytes  int64
	retentionDays int
	folderPath    string
}

func NewLoggerService(config map[string]interface{}) *LoggerService {
	maxMB, _ := config["max_file_mb"].(int)
	if maxMB == 0 {
		if f, ok := config["max_file_mb"].(float64); ok {
			maxMB = int(f)
		}
	}
	retention, _ := config["retention_days"].(int)
	if retention == 0 {
		if f, ok := config["retention_days"].(float64); ok {
			retention = int(f)
		}
	}
	folder, _ := config["folder_path"].(string)
	if folder == "" {
		folder = "./logs"
	}
	return &LoggerService{
		Config:        config,
		stopCh:        make(chan struct{}),
		maxFileBytes:  int64(maxMB) * 1024 * 1024,
		retentionDays: retention,
		folderPath:    folder,
	}
}

func (l *LoggerService) Name() string {
	return "logger"
}

func (l *LoggerService) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.folderPath, 0755); err != nil {
		return err
	}
	if err := l.openLogFile(); err != nil {
		return err
	}
	log.Println("[LoggerService] Started, writing to", l.currentLog)

	l.wg.Add(1)
	go l.maintainLoop()
	return nil
}

func (l *LoggerService) Stop() error {
	close(l.stopCh)
	l.wg.Wait()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		log.Println("[LoggerService] Stopping")
		log.SetOutput(os.Stderr)
		return l.file.Close()
	}
	return nil
}

// openLogFile points the global logger at a fresh timestamped file. The
// previous file, if any, is closed first. Caller holds the mutex.
func (l *LoggerService) openLogFile() error {
	path := filepath.Join(l.folderPath,
		fmt.Sprintf("cashflow_%s.log", time.Now().Format("20060102_150405")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if l.file != nil {
		l.file.Close()
	}
	l.file = file
	l.currentLog = path
	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return nil
}

// maintainLoop checks the active file size frequently and the retention
// window once a day.
func (l *LoggerService) maintainLoop() {
	defer l.wg.Done()
	sizeCheck := time.NewTicker(10 * time.Second)
	retention := time.NewTicker(24 * time.Hour)
	defer sizeCheck.Stop()
	defer retention.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-sizeCheck.C:
			l.rotateIfNeeded()
		case <-retention.C:
			l.archiveExpired()
		}
	}
}

func (l *LoggerService) rotateIfNeeded() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil || l.maxFileBytes <= 0 {
		return nil
	}
	info, err := l.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() < l.maxFileBytes {
		return nil
	}
	if err := l.openLogFile(); err != nil {
		return err
	}
	log.Println("[LoggerService] Rotated log file to", l.currentLog)
	return nil
}

// expiredLogs lists closed log files whose mtime predates the retention
// cutoff. The live log is never a candidate.
func (l *LoggerService) expiredLogs(cutoff time.Time) []string {
	entries, err := os.ReadDir(l.folderPath)
	if err != nil {
		return nil
	}
	var expired []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".log" {
			continue
		}
		path := filepath.Join(l.folderPath, e.Name())
		if path == l.currentLog {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		expired = append(expired, path)
	}
	return expired
}

// archiveExpired moves expired log files into a dated zip. No zip is
// created on days with nothing to archive.
func (l *LoggerService) archiveExpired() {
	if l.retentionDays <= 0 {
		return
	}
	expired := l.expiredLogs(time.Now().AddDate(0, 0, -l.retentionDays))
	if len(expired) == 0 {
		return
	}

	zipPath := filepath.Join(l.folderPath,
		fmt.Sprintf("logs_%s.zip", time.Now().Format("20060102")))
	zipFile, err := os.Create(zipPath)
	if err != nil {
		return
	}
	defer zipFile.Close()
	zw := zip.NewWriter(zipFile)
	defer zw.Close()

	for _, path := range expired {
		if err := addToZip(zw, path); err != nil {
			continue
		}
		os.Remove(path)
	}
}

func addToZip(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	w, err := zw.Create(filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

// LogAudit records an operational audit line (service starts, scheduled
// report runs).
func (l *LoggerService) LogAudit(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	log.Printf("[AUDIT] %s", msg)
}

var GlobalLogger *LoggerService

func SetGlobalLogger(l *LoggerService) {
	GlobalLogger = l
}
