package static

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strconv"
	"syscall"
)

// NotFoundPrefix starts every 404 body; the resolved path follows it.
const NotFoundPrefix = "404 - File not found: "

// InternalErrorBody is written when an existing file cannot be read.
const InternalErrorBody = "500 - Internal server error"

// Result describes how a single request was resolved.
type Result struct {
	// RequestPath is the raw URL path of the request.
	RequestPath string
	// ResolvedPath is the candidate path relative to the serving root.
	ResolvedPath string
	// ContentType is set only when Status is 200.
	ContentType string
	// Status is the HTTP status code that will be written.
	Status int
	// Err holds the I/O fault behind a 500 status.
	Err error

	body []byte
}

// Handler serves files from a file system rooted at the serving root.
// It holds no mutable state and is safe for concurrent use.
type Handler struct {
	fsys  fs.FS
	index string
}

// NewHandler creates a Handler serving files under the directory root.
// An empty root means the process working directory and an empty index
// means DefaultIndex.
func NewHandler(root, index string) *Handler {
	if root == "" {
		root = "."
	}
	return NewFSHandler(os.DirFS(root), index)
}

// NewFSHandler creates a Handler serving files from fsys.
func NewFSHandler(fsys fs.FS, index string) *Handler {
	if index == "" {
		index = DefaultIndex
	}
	return &Handler{fsys: fsys, index: index}
}

// Lookup resolves requestPath and reads the matching file.
//
// Paths that are absolute or contain "." or ".." elements cannot name a file
// inside the serving root and are reported as not found.
func (h *Handler) Lookup(requestPath string) Result {
	res := Result{RequestPath: requestPath, ResolvedPath: Resolve(requestPath, h.index)}

	if !fs.ValidPath(res.ResolvedPath) {
		res.Status = http.StatusNotFound
		return res
	}

	info, err := fs.Stat(h.fsys, res.ResolvedPath)
	if err != nil {
		if notExist(err) {
			res.Status = http.StatusNotFound
			return res
		}
		res.Status = http.StatusInternalServerError
		res.Err = fmt.Errorf("stat %s: %w", res.ResolvedPath, err)
		return res
	}
	if !info.Mode().IsRegular() {
		res.Status = http.StatusNotFound
		return res
	}

	body, err := fs.ReadFile(h.fsys, res.ResolvedPath)
	if err != nil {
		res.Status = http.StatusInternalServerError
		res.Err = fmt.Errorf("read %s: %w", res.ResolvedPath, err)
		return res
	}

	res.Status = http.StatusOK
	res.ContentType = ContentType(res.ResolvedPath)
	res.body = body
	return res
}

// ServeHTTP implements http.Handler. Every method is treated like GET.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := h.Lookup(r.URL.Path)

	switch res.Status {
	case http.StatusOK:
		w.Header().Set("Content-Type", res.ContentType)
		writeBody(w, res.Status, res.body)
	case http.StatusNotFound:
		writeBody(w, res.Status, []byte(NotFoundPrefix+res.ResolvedPath))
	default:
		log.Printf("Failed to serve %s: %v", res.RequestPath, res.Err)
		writeBody(w, res.Status, []byte(InternalErrorBody))
	}
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// notExist reports whether err means there is no file at the path. A path
// that walks through a regular file ("index.html/x") counts as missing.
func notExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
