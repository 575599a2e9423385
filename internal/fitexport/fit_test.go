package fitexport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayazhan/wrkt/internal/workout"
)

func testRecord() workout.Record {
	start := time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)
	return workout.Record{
		SessionID:       "sess-fit",
		Activity:        workout.ActivityCycling,
		DeviceID:        "watch-1",
		StartedAt:       start,
		EndedAt:         start.Add(45 * time.Minute),
		Elapsed:         45 * time.Minute,
		Active:          40 * time.Minute,
		DistanceMeters:  21000,
		EnergyKcal:      512,
		AvgHeartRateBPM: 139,
	}
}

func TestWriteProducesFitFile(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testRecord()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data := buf.Bytes()
	if len(data) <= 14 {
		t.Fatalf("encoded only %d bytes", len(data))
	}
	// FIT header: size byte, then ".FIT" at offset 8.
	if data[0] != 12 && data[0] != 14 {
		t.Fatalf("header size byte = %d", data[0])
	}
	if string(data[8:12]) != ".FIT" {
		t.Fatalf("magic = %q, want .FIT", data[8:12])
	}
}

func TestSaveWritesFile(t *testing.T) {
	rec := testRecord()
	path := filepath.Join(t.TempDir(), Filename(rec))

	if err := Save(path, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("exported file is empty")
	}
}

func TestFilename(t *testing.T) {
	got := Filename(testRecord())
	if got != "wrkt_20260502_180000_cycling.fit" {
		t.Fatalf("Filename = %q", got)
	}
}

func TestDeviceSerialStable(t *testing.T) {
	if deviceSerial("watch-1") != deviceSerial("watch-1") {
		t.Fatal("serial not stable for the same device")
	}
	if deviceSerial("watch-1") == deviceSerial("watch-2") {
		t.Fatal("different devices share a serial")
	}
}
