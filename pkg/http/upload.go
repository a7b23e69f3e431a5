package http

import (
	"archive/tar"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/thehowl/cford32"
	"github.com/zjamron/redline/pkg/compare"
	"github.com/zjamron/redline/pkg/db"
	"github.com/zjamron/redline/pkg/jsondoc"
	"go.uber.org/multierr"
)

const (
	maxBodySize        = 1 << 20 // 1M
	maxMultipartMemory = maxBodySize

	maxBytesWeek = (1 << 20) * 2 // 2M (compressed)
	maxCallsWeek = 100           // max upload calls per week.
)

func (s *Server) upload(w http.ResponseWriter, r *http.Request) error {
	// Read multipart form.
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	err := r.ParseMultipartForm(maxMultipartMemory)
	if err != nil {
		w.WriteHeader(400)
		w.Write([]byte("error: " + err.Error() + "\n"))
		w.Write(s.usageString())
		return nil
	}
	defer r.MultipartForm.RemoveAll()

	origRaw, modRaw, err := rawDocumentsFromForm(r.MultipartForm)
	if err != nil {
		return err
	}

	// Validate both sides decode as documents before doing anything else;
	// a malformed upload is a caller error, surfaced immediately rather
	// than stored.
	origDoc, err := jsondoc.Decode(bytes.NewReader(origRaw))
	if err != nil {
		return &compare.CallerError{Detail: fmt.Sprintf("decoding orig document: %v", err)}
	}
	modDoc, err := jsondoc.Decode(bytes.NewReader(modRaw))
	if err != nil {
		return &compare.CallerError{Detail: fmt.Sprintf("decoding mod document: %v", err)}
	}

	result := compare.Compare(origDoc, modDoc, s.Config)
	if !result.Success {
		return result.Err
	}

	arc, err := archiveDocuments(origRaw, modRaw)
	if err != nil {
		return err
	}

	// Determine name of object.
	shaHash := sha256.Sum256(arc)
	// Use first 5 bytes (40 bits) to generate human readable ID.
	id := cford32.EncodeToStringLower(shaHash[:5])
	link := s.PublicURL + "/" + id
	output := func() {
		w.Header().Set(ctHeader, ctPlain)
		w.Header().Set("Location", link)
		w.WriteHeader(http.StatusFound)
		w.Write([]byte(link + "\n"))
	}

	// Is this a reupload?
	has, err := s.DB.HasJob(id)
	if err != nil {
		return err
	}
	if has {
		output()
		return nil
	}

	now := time.Now().UTC()
	weekNum := (now.YearDay() - 1) / 7
	err = s.DB.AddAmountsAndCompare(
		r.RemoteAddr,
		db.UsageStat{
			Period:   fmt.Sprintf("%d/%d", now.Year(), weekNum),
			NumBytes: uint64(len(arc)),
			NumCalls: 1,
		},
		db.UploadLimits{
			MaxBytes: maxBytesWeek,
			MaxCalls: maxCallsWeek,
		},
	)
	if err != nil {
		if errors.Is(err, db.ErrLimitsExceeded) {
			w.Header().Set(ctHeader, ctPlain)
			w.WriteHeader(http.StatusTooManyRequests)
			resetTime := time.Date(now.Year(), time.January, ((weekNum+1)*7)+1, 0, 0, 0, 0, time.UTC)
			w.Write([]byte(fmt.Sprintf(
				"limit exceeded; will reset on %s (in %s)\n",
				resetTime.Format(time.RFC3339),
				resetTime.Sub(now),
			)))
			return nil
		}
		return err
	}

	// not a reupload, save to permanent storage & db.
	err = s.Storage.Put(r.Context(), id, arc)
	if err != nil {
		return err
	}

	err = s.DB.PutJob(id, db.Job{
		CreatedAt: time.Now(),
		Sum:       hex.EncodeToString(shaHash[:]),
	})
	if err != nil {
		// background -> attempt to delete even if request is canceled
		return multierr.Combine(
			err,
			s.Storage.Del(context.Background(), id),
		)
	}

	// cache the computed statistics; later views of this same job report
	// these in place of the statistics of their own fresh comparison.
	if err := s.DB.PutStatistics(id, db.CachedStatistics{
		Insertions: result.Stats.Insertions,
		Deletions:  result.Stats.Deletions,
		Moves:      result.Stats.Moves,
		Unchanged:  result.Stats.Unchanged,
	}); err != nil {
		// best-effort cache; a failure here must not fail the upload.
		log.Printf("warning: failed to cache statistics for %s: %v", id, err)
	}

	output()
	return nil
}

var gzipWriterPool = sync.Pool{
	New: func() any {
		return &gzip.Writer{}
	},
}

func archiveDocuments(origRaw, modRaw []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzipWriterPool.Get().(*gzip.Writer)
	gz.Reset(&buf)
	defer func() {
		gzipWriterPool.Put(gz)
	}()
	tw := tar.NewWriter(gz)

	if err := tarWriteBytes(tw, "orig.json", origRaw); err != nil {
		return nil, err
	}
	if err := tarWriteBytes(tw, "mod.json", modRaw); err != nil {
		return nil, err
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rawDocumentsFromForm pulls the orig/mod document bytes out of the
// multipart form, whether they arrived as uploaded files or as plain form
// values (the latter is what the homepage's textarea form submits).
func rawDocumentsFromForm(mf *multipart.Form) (origRaw, modRaw []byte, err error) {
	if len(mf.File) > 0 {
		return rawFromFormFiles(mf)
	}
	return rawFromFormValues(mf)
}

func rawFromFormFiles(mf *multipart.Form) ([]byte, []byte, error) {
	origS, modS := mf.File["orig"], mf.File["mod"]
	if len(origS) != 1 || len(modS) != 1 {
		return nil, nil, errUsage
	}

	readOne := func(fh *multipart.FileHeader) ([]byte, error) {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	origRaw, err := readOne(origS[0])
	if err != nil {
		return nil, nil, err
	}
	modRaw, err := readOne(modS[0])
	if err != nil {
		return nil, nil, err
	}
	return origRaw, modRaw, nil
}

func rawFromFormValues(mf *multipart.Form) ([]byte, []byte, error) {
	origFile, modFile := mf.Value["orig"], mf.Value["mod"]
	if len(origFile) != 1 || len(modFile) != 1 {
		return nil, nil, errUsage
	}
	return []byte(strings.TrimSpace(origFile[0])), []byte(strings.TrimSpace(modFile[0])), nil
}

func tarWriteBytes(tw *tar.Writer, name string, data []byte) error {
	err := tw.WriteHeader(&tar.Header{
		Name: name,
		Size: int64(len(data)),
		Mode: 0o600,
	})
	if err != nil {
		return err
	}
	_, err = tw.Write(data)
	return err
}
