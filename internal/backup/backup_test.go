package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/danli429/team-scheduling-system/internal/model"
	"github.com/danli429/team-scheduling-system/internal/store"
)

// mockS3Client implements s3Client for testing.
type mockS3Client struct {
	mu       sync.Mutex
	objects  map[string][]byte
	modified map[string]time.Time
	putErrs  int // fail this many PutObject calls before succeeding
	puts     int
}

func newMockS3() *mockS3Client {
	return &mockS3Client{
		objects:  make(map[string][]byte),
		modified: make(map[string]time.Time),
	}
}

func (m *mockS3Client) seed(key string, data []byte, mod time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	m.modified[key] = mod
}

func (m *mockS3Client) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErrs > 0 {
		m.putErrs--
		return nil, errors.New("simulated upload failure")
	}
	data, _ := io.ReadAll(input.Body)
	m.objects[*input.Key] = data
	m.modified[*input.Key] = time.Now().UTC()
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) GetObject(_ context.Context, input *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[*input.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader(data)),
	}, nil
}

func (m *mockS3Client) DeleteObject(_ context.Context, input *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, *input.Key)
	delete(m.modified, *input.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (m *mockS3Client) ListObjectsV2(_ context.Context, input *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for key, data := range m.objects {
		if !strings.HasPrefix(key, aws.ToString(input.Prefix)) {
			continue
		}
		mod := m.modified[key]
		out.Contents = append(out.Contents, s3types.Object{
			Key:          aws.String(key),
			Size:         aws.Int64(int64(len(data))),
			LastModified: aws.Time(mod),
		})
	}
	return out, nil
}

func testConfig() Config {
	return Config{
		Bucket:        "backups",
		Region:        "us-east-1",
		AccessKey:     "key",
		SecretKey:     "secret",
		Passphrase:    "hunter2",
		RetentionDays: 30,
	}
}

func setupManager(t *testing.T, cfg Config) (*Manager, *store.Store, *mockS3Client) {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	m := NewManager(cfg, st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	mock := newMockS3()
	if m.client != nil {
		m.client = mock
	}
	return m, st, mock
}

func TestManagerDisabledWithoutConfig(t *testing.T) {
	m, _, _ := setupManager(t, Config{})

	if got := m.Status().State; got != StateDisabled {
		t.Errorf("state = %q, want %q", got, StateDisabled)
	}
	if _, err := m.RunNow(context.Background()); err == nil {
		t.Error("expected RunNow to fail when disabled")
	}
	if err := m.Restore(context.Background(), "latest"); err == nil {
		t.Error("expected Restore to fail when disabled")
	}
	if err := m.Start(); err != nil {
		t.Errorf("disabled start: %v", err)
	}
	m.Stop()
	m.Stop()
}

func TestRunNowUploadsDecryptableSnapshot(t *testing.T) {
	m, st, mock := setupManager(t, testConfig())
	if _, err := st.AddMember("Alice", "alice@example.com"); err != nil {
		t.Fatalf("add member: %v", err)
	}

	key, err := m.RunNow(context.Background())
	if err != nil {
		t.Fatalf("run backup: %v", err)
	}
	if !strings.HasPrefix(key, "backups/roster-") || !strings.HasSuffix(key, ".json.enc") {
		t.Errorf("key = %q, want backups/roster-*.json.enc", key)
	}

	sealed, ok := mock.objects[key]
	if !ok {
		t.Fatalf("object %q not uploaded", key)
	}
	plaintext, err := Decrypt(sealed, "hunter2")
	if err != nil {
		t.Fatalf("decrypt uploaded payload: %v", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(plaintext, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if len(snap.Members) != 1 || snap.Members[0].Name != "Alice" {
		t.Errorf("snapshot members = %+v", snap.Members)
	}

	status := m.Status()
	if status.State != StateIdle || status.LastBackup == nil || status.LastKey != key {
		t.Errorf("status after backup = %+v", status)
	}
}

func TestRunNowRetriesFailedUploads(t *testing.T) {
	m, _, mock := setupManager(t, testConfig())
	mock.putErrs = 1

	if _, err := m.RunNow(context.Background()); err != nil {
		t.Fatalf("run backup: %v", err)
	}
	if mock.puts != 2 {
		t.Errorf("put attempts = %d, want 2", mock.puts)
	}
}

func encryptSnapshot(t *testing.T, passphrase, memberName string) []byte {
	t.Helper()
	snap := model.Snapshot{
		Members: []model.Member{{ID: "m1", Name: memberName, Status: model.MemberActive}},
	}
	plaintext, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	sealed, err := Encrypt(plaintext, passphrase)
	if err != nil {
		t.Fatalf("encrypt snapshot: %v", err)
	}
	return sealed
}

func TestRestoreLatestPicksNewestObject(t *testing.T) {
	m, st, mock := setupManager(t, testConfig())

	now := time.Now().UTC()
	mock.seed("backups/roster-old.json.enc", encryptSnapshot(t, "hunter2", "OldName"), now.Add(-48*time.Hour))
	mock.seed("backups/roster-new.json.enc", encryptSnapshot(t, "hunter2", "NewName"), now)

	if err := m.Restore(context.Background(), "latest"); err != nil {
		t.Fatalf("restore: %v", err)
	}

	members := st.Members()
	if len(members) != 1 || members[0].Name != "NewName" {
		t.Errorf("members after restore = %+v", members)
	}
}

func TestRestoreSpecificKey(t *testing.T) {
	m, st, mock := setupManager(t, testConfig())
	mock.seed("backups/roster-old.json.enc", encryptSnapshot(t, "hunter2", "OldName"), time.Now().UTC())

	if err := m.Restore(context.Background(), "backups/roster-old.json.enc"); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if members := st.Members(); len(members) != 1 || members[0].Name != "OldName" {
		t.Errorf("members after restore = %+v", members)
	}

	if err := m.Restore(context.Background(), "backups/missing.json.enc"); err == nil {
		t.Error("expected an error for a missing key")
	}
}

func TestRestoreWrongPassphraseLeavesStoreAlone(t *testing.T) {
	m, st, mock := setupManager(t, testConfig())
	if _, err := st.AddMember("Keep", ""); err != nil {
		t.Fatalf("add member: %v", err)
	}
	mock.seed("backups/roster-x.json.enc", encryptSnapshot(t, "other-passphrase", "Intruder"), time.Now().UTC())

	if err := m.Restore(context.Background(), "latest"); err == nil {
		t.Fatal("expected a decrypt error")
	}
	if members := st.Members(); len(members) != 1 || members[0].Name != "Keep" {
		t.Errorf("members changed by failed restore: %+v", members)
	}
}

func TestCleanupRespectsRetention(t *testing.T) {
	cfg := testConfig()
	cfg.RetentionDays = 7
	m, _, mock := setupManager(t, cfg)

	now := time.Now().UTC()
	mock.seed("backups/roster-ancient.json.enc", []byte("x"), now.AddDate(0, 0, -30))
	mock.seed("backups/roster-recent.json.enc", []byte("y"), now.AddDate(0, 0, -2))
	mock.seed("unrelated/file", []byte("z"), now.AddDate(0, 0, -30))

	deleted, err := m.Cleanup(context.Background())
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if _, ok := mock.objects["backups/roster-ancient.json.enc"]; ok {
		t.Error("expired backup still present")
	}
	if _, ok := mock.objects["backups/roster-recent.json.enc"]; !ok {
		t.Error("recent backup was deleted")
	}
	if _, ok := mock.objects["unrelated/file"]; !ok {
		t.Error("object outside the prefix was deleted")
	}
}

func TestListSortsNewestFirst(t *testing.T) {
	m, _, mock := setupManager(t, testConfig())

	now := time.Now().UTC()
	mock.seed("backups/roster-a.json.enc", []byte("a"), now.Add(-2*time.Hour))
	mock.seed("backups/roster-b.json.enc", []byte("b"), now)
	mock.seed("backups/roster-c.json.enc", []byte("c"), now.Add(-1*time.Hour))

	items, err := m.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"backups/roster-b.json.enc", "backups/roster-c.json.enc", "backups/roster-a.json.enc"}
	if len(items) != len(want) {
		t.Fatalf("listed %d items, want %d", len(items), len(want))
	}
	for i, k := range want {
		if items[i].Key != k {
			t.Errorf("items[%d].Key = %q, want %q", i, items[i].Key, k)
		}
	}
}
