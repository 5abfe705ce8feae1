package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadFileMultipart(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/file/upload" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}

		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer f.Close()
		if header.Filename != "notes.txt" {
			t.Fatalf("unexpected filename: %q", header.Filename)
		}
		contents, _ := io.ReadAll(f)
		if string(contents) != "chapter one" {
			t.Fatalf("unexpected contents: %q", contents)
		}
		if got := r.FormValue("session_id"); got != "session_1_a_AAAAAAAA" {
			t.Fatalf("unexpected session_id: %q", got)
		}
		if got := r.FormValue("description"); got != "homework" {
			t.Fatalf("unexpected description: %q", got)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"f1","file_name":"notes.txt","file_size":11,"file_url":"/file/download/static/uploading/u1/personal/f1_notes.txt"}`))
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	info, err := c.UploadFile(context.Background(), "notes.txt", strings.NewReader("chapter one"), "session_1_a_AAAAAAAA", "homework")
	if err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}
	if info.ID != "f1" || info.FileName != "notes.txt" {
		t.Fatalf("unexpected file info: %+v", info)
	}
}

func TestUploadFileOmitsEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, ok := r.MultipartForm.Value["session_id"]; ok {
			t.Fatal("empty session_id should not be sent")
		}
		if _, ok := r.MultipartForm.Value["description"]; ok {
			t.Fatal("empty description should not be sent")
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"f2"}`))
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	if _, err := c.UploadFile(context.Background(), "a.txt", strings.NewReader("x"), "", ""); err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}
}

func TestUploadFileErrorDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = w.Write([]byte(`{"detail":"file too large"}`))
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	_, err := c.UploadFile(context.Background(), "big.bin", strings.NewReader("x"), "", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "file too large") {
		t.Fatalf("error does not carry service detail: %v", err)
	}
}

func TestDownloadFile(t *testing.T) {
	t.Parallel()

	const path = "/file/download/static/uploading/u1/personal/f1_notes.txt"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != path {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte("chapter one"))
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	body, err := c.DownloadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("DownloadFile returned error: %v", err)
	}
	defer body.Close()

	contents, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(contents) != "chapter one" {
		t.Fatalf("unexpected contents: %q", contents)
	}
}

func TestDownloadFileNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"file not found"}`))
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	if _, err := c.DownloadFile(context.Background(), "/file/download/missing"); err == nil {
		t.Fatal("expected error")
	}
}
