package render

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/markup/pkg/markup"
)

func TestDiskSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public")
	sink := NewDiskSink(dir)

	if err := sink.Write(context.Background(), DocumentName, []byte("first")); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := sink.Write(context.Background(), DocumentName, []byte("second")); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, DocumentName))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only %s", len(entries), DocumentName)
	}
}

func TestDiskSinkDefaultsToWorkingDir(t *testing.T) {
	if got := NewDiskSink("").Dir(); got != "." {
		t.Errorf("Dir = %q, want .", got)
	}
}

func TestDiskSinkCanceledContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewDiskSink(dir).Write(ctx, DocumentName, []byte("x"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(filepath.Join(dir, DocumentName)); !os.IsNotExist(err) {
		t.Error("nothing should be written after cancellation")
	}
}

func TestRenderDocumentToDisk(t *testing.T) {
	dir := t.TempDir()
	a := markup.NewArena()
	h1, err := a.New("h1", markup.Text("Ayosh"), markup.ID("id1"))
	if err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(RendererConfig{Sink: NewDiskSink(dir)})
	doc, err := r.RenderDocument(context.Background(), a, h1)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != doc {
		t.Errorf("file = %q, want %q", data, doc)
	}
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	data := []byte("abc")
	if err := sink.Write(context.Background(), "b.html", data); err != nil {
		t.Fatal(err)
	}
	if err := sink.Write(context.Background(), "a.html", []byte("x")); err != nil {
		t.Fatal(err)
	}
	data[0] = 'z'

	got, ok := sink.Get("b.html")
	if !ok || string(got) != "abc" {
		t.Errorf("Get = %q, %v, want abc (sink must copy)", got, ok)
	}
	if _, ok := sink.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}
	names := sink.Names()
	if len(names) != 2 || names[0] != "a.html" || names[1] != "b.html" {
		t.Errorf("Names = %v", names)
	}
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink(t *testing.T) {
	tests := []struct {
		prefix  string
		wantKey string
	}{
		{"", "index.html"},
		{"preview", "preview/index.html"},
		{"preview/", "preview/index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.wantKey+"/"+tt.prefix, func(t *testing.T) {
			client := &fakeS3{}
			sink := NewS3Sink(client, "site", tt.prefix)

			if err := sink.Write(context.Background(), DocumentName, []byte("<html>")); err != nil {
				t.Fatal(err)
			}
			if got := aws.ToString(client.input.Bucket); got != "site" {
				t.Errorf("Bucket = %q", got)
			}
			if got := aws.ToString(client.input.Key); got != tt.wantKey {
				t.Errorf("Key = %q, want %q", got, tt.wantKey)
			}
			if got := aws.ToString(client.input.ContentType); got != "text/html; charset=utf-8" {
				t.Errorf("ContentType = %q", got)
			}
			if string(client.body) != "<html>" {
				t.Errorf("Body = %q", client.body)
			}
		})
	}
}

func TestS3SinkError(t *testing.T) {
	boom := errors.New("access denied")
	sink := NewS3Sink(&fakeS3{err: boom}, "site", "")

	err := sink.Write(context.Background(), DocumentName, []byte("x"))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}

func TestDiscard(t *testing.T) {
	if err := Discard.Write(context.Background(), DocumentName, []byte("x")); err != nil {
		t.Errorf("Discard.Write error: %v", err)
	}
	if Discard.Name() != "discard" {
		t.Errorf("Name = %q", Discard.Name())
	}
}
