package storage

import (
	"net/url"
	"testing"
)

func TestWithPublicURL(t *testing.T) {
	u, err := url.Parse("http://minio:9000/meeting-minion/recordings/a.mp3?X-Amz-Signature=abc")
	if err != nil {
		t.Fatal(err)
	}

	got, err := withPublicURL(u, "")
	if err != nil || got != u.String() {
		t.Fatalf("no public URL: %q, %v", got, err)
	}

	got, err = withPublicURL(u, "https://files.example.com/s3")
	if err != nil {
		t.Fatal(err)
	}
	want := "https://files.example.com/s3/meeting-minion/recordings/a.mp3?X-Amz-Signature=abc"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
