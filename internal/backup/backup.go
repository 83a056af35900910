// Package backup ships encrypted snapshots to S3-compatible storage on a
// cron schedule and restores them on demand.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/robfig/cron/v3"
	"github.com/sethvargo/go-retry"

	"github.com/danli429/team-scheduling-system/internal/store"
)

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Config holds backup configuration. Backups are disabled until the
// bucket, credentials and passphrase are all present.
type Config struct {
	Endpoint      string
	Bucket        string
	Region        string
	AccessKey     string
	SecretKey     string
	Prefix        string
	Passphrase    string
	Schedule      string // cron spec for scheduled runs
	RetentionDays int
}

func (c Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != "" && c.Passphrase != ""
}

// State represents the backup manager state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateDisabled State = "disabled"
	StateError    State = "error"
)

// Status holds the current backup manager status.
type Status struct {
	State      State      `json:"state"`
	LastBackup *time.Time `json:"lastBackup,omitempty"`
	LastKey    string     `json:"lastKey,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Item describes one stored backup object.
type Item struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Manager uploads encrypted roster snapshots and restores them. A manager
// built from an incomplete Config stays disabled: RunNow and Restore
// report errors and Start is a no-op.
type Manager struct {
	mu     sync.RWMutex
	cfg    Config
	status Status

	store  *store.Store
	log    *slog.Logger
	client s3Client
	cron   *cron.Cron
}

func NewManager(cfg Config, st *store.Store, log *slog.Logger) *Manager {
	if cfg.Prefix == "" {
		cfg.Prefix = "backups/"
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 30
	}

	m := &Manager{
		cfg:    cfg,
		store:  st,
		log:    log,
		status: Status{State: StateDisabled},
	}
	if cfg.Enabled() {
		m.client = newS3Client(cfg)
		m.status.State = StateIdle
	}
	return m
}

func newS3Client(cfg Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Start schedules recurring backups. Without a schedule (or with backups
// disabled) it does nothing.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil || m.cfg.Schedule == "" || m.cron != nil {
		return nil
	}

	c := cron.New(cron.WithLocation(time.Local))
	_, err := c.AddFunc(m.cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if _, err := m.RunNow(ctx); err != nil {
			m.log.Error("scheduled backup failed", "error", err)
			return
		}
		if deleted, err := m.Cleanup(ctx); err != nil {
			m.log.Error("backup cleanup failed", "error", err)
		} else if deleted > 0 {
			m.log.Info("old backups removed", "count", deleted)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule backups: %w", err)
	}

	c.Start()
	m.cron = c
	m.log.Info("backup schedule active", "spec", m.cfg.Schedule)
	return nil
}

// Stop halts scheduled backups and waits for a running job to finish.
func (m *Manager) Stop() {
	m.mu.Lock()
	c := m.cron
	m.cron = nil
	m.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

// Status returns the current backup status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) setStatus(s Status) {
	m.mu.Lock()
	m.status = s
	m.mu.Unlock()
}

// RunNow exports a snapshot, encrypts it and uploads it, returning the
// object key. Uploads are retried with exponential backoff before the
// run is declared failed.
func (m *Manager) RunNow(ctx context.Context) (string, error) {
	m.mu.RLock()
	client := m.client
	cfg := m.cfg
	m.mu.RUnlock()

	if client == nil {
		return "", fmt.Errorf("backups not configured")
	}

	m.setStatus(Status{State: StateRunning})

	snap := m.store.Snapshot()
	plaintext, err := json.Marshal(snap)
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	payload, err := Encrypt(plaintext, cfg.Passphrase)
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return "", fmt.Errorf("encrypt snapshot: %w", err)
	}

	key := fmt.Sprintf("%sroster-%s.json.enc", cfg.Prefix, time.Now().UTC().Format("2006-01-02T150405Z"))
	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(cfg.Bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(payload),
			ContentLength: aws.Int64(int64(len(payload))),
		})
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return "", fmt.Errorf("upload backup: %w", err)
	}

	now := time.Now().UTC()
	m.setStatus(Status{State: StateIdle, LastBackup: &now, LastKey: key})
	m.log.Info("backup uploaded", "key", key, "bytes", len(payload))
	return key, nil
}

// Restore downloads a backup, decrypts it and imports it into the live
// store. The key "latest" resolves to the newest stored object.
func (m *Manager) Restore(ctx context.Context, key string) error {
	m.mu.RLock()
	client := m.client
	cfg := m.cfg
	m.mu.RUnlock()

	if client == nil {
		return fmt.Errorf("backups not configured")
	}

	if key == "" || key == "latest" {
		items, err := m.List(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("no backups found under %q", cfg.Prefix)
		}
		key = items[0].Key
	}

	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("download backup: %w", err)
	}
	defer result.Body.Close()

	payload, err := io.ReadAll(result.Body)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	plaintext, err := Decrypt(payload, cfg.Passphrase)
	if err != nil {
		return fmt.Errorf("decrypt backup: %w", err)
	}

	if err := m.store.Import(plaintext); err != nil {
		return fmt.Errorf("import backup: %w", err)
	}
	m.log.Info("backup restored", "key", key)
	return nil
}

// List returns the stored backups, newest first.
func (m *Manager) List(ctx context.Context) ([]Item, error) {
	m.mu.RLock()
	client := m.client
	cfg := m.cfg
	m.mu.RUnlock()

	if client == nil {
		return nil, fmt.Errorf("backups not configured")
	}

	items := []Item{}
	var token *string
	for {
		out, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(cfg.Bucket),
			Prefix:            aws.String(cfg.Prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list backups: %w", err)
		}
		for _, obj := range out.Contents {
			items = append(items, Item{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].LastModified.After(items[j].LastModified)
	})
	return items, nil
}

// Cleanup deletes backups older than the retention period and reports how
// many were removed. Individual delete failures are logged and skipped so
// one bad object cannot wedge the rotation.
func (m *Manager) Cleanup(ctx context.Context) (int, error) {
	m.mu.RLock()
	client := m.client
	cfg := m.cfg
	m.mu.RUnlock()

	if client == nil {
		return 0, nil
	}

	items, err := m.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -cfg.RetentionDays)
	deleted := 0
	for _, item := range items {
		if !item.LastModified.Before(cutoff) {
			continue
		}
		if _, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(cfg.Bucket),
			Key:    aws.String(item.Key),
		}); err != nil {
			m.log.Warn("delete old backup failed", "key", item.Key, "error", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}
