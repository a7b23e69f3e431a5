package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.etcd.io/bbolt"

	"github.com/zjamron/redline/pkg/compare"
	"github.com/zjamron/redline/pkg/db"
	rhttp "github.com/zjamron/redline/pkg/http"
	"github.com/zjamron/redline/pkg/storage"

	nethttp "net/http"
)

type optsType struct {
	listenAddr     string
	publicURL      string
	dbFile         string
	s3Endpoint     string
	s3AccessKey    string
	s3AccessSecret string
	s3Bucket       string
	cacheMaxBytes  uint64

	paragraphThreshold float64
	moveThreshold      float64
	rowThreshold       float64
	minMoveWords       int
}

func defaultEnv(s, def string) string {
	v, ok := os.LookupEnv(s)
	if ok {
		return v
	}
	return def
}

func stringVar(p *string, fg, defaultValue, usage string) {
	ev := strings.ReplaceAll(strings.ToUpper(fg), "-", "_")
	flag.StringVar(p, fg, defaultEnv(ev, defaultValue), usage+". env var: "+ev)
}

func main() {
	defaultCfg := compare.DefaultConfig()

	var opts optsType
	stringVar(&opts.listenAddr, "listen-addr", ":18844", "listen address for the web server")
	stringVar(&opts.publicURL, "public-url", "localhost:18844", "url for the server, used in the curl example")
	stringVar(&opts.dbFile, "db-file", "data/db.bolt", "the file used for the database. "+
		"this will be a cache (if used together with s3) or the permanent database")
	stringVar(&opts.s3Endpoint, "s3-endpoint", "", "s3 endpoint")
	stringVar(&opts.s3AccessKey, "s3-access-key", "", "s3 access key")
	stringVar(&opts.s3AccessSecret, "s3-access-secret", "", "s3 access secret")
	stringVar(&opts.s3Bucket, "s3-bucket", "", "s3 bucket")
	flag.Uint64Var(&opts.cacheMaxBytes, "cache-max-bytes", 1<<28, "max size in bytes of the local cache, when s3 storage is used")

	flag.Float64Var(&opts.paragraphThreshold, "paragraph-similarity-threshold", defaultCfg.ParagraphSimilarityThreshold,
		"minimum similarity for two paragraphs to be matched instead of shown as a delete+insert")
	flag.Float64Var(&opts.moveThreshold, "move-similarity-threshold", defaultCfg.MoveSimilarityThreshold,
		"minimum similarity for a delete/insert pair to be reported as a move")
	flag.Float64Var(&opts.rowThreshold, "row-similarity-threshold", defaultCfg.RowSimilarityThreshold,
		"minimum similarity for two table rows to be matched instead of shown as a delete+insert")
	flag.IntVar(&opts.minMoveWords, "min-move-words", defaultCfg.MinMoveWords,
		"minimum word count for a segment to be considered as a move candidate")
	flag.Parse()

	bdb, err := bbolt.Open(opts.dbFile, 0o600, nil)
	if err != nil {
		panic(fmt.Errorf("db open error: %w", err))
	}

	srv := &rhttp.Server{
		PublicURL: opts.publicURL,
		DB:        &db.DB{DB: bdb},
		Config: compare.Config{
			ParagraphSimilarityThreshold: opts.paragraphThreshold,
			MoveSimilarityThreshold:      opts.moveThreshold,
			RowSimilarityThreshold:       opts.rowThreshold,
			MinMoveWords:                 opts.minMoveWords,
		},
	}

	if opts.s3Endpoint == "" {
		srv.Storage = storage.NewDBStorage(bdb, []byte("storage"))
	} else {
		minioClient, err := minio.New(opts.s3Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(opts.s3AccessKey, opts.s3AccessSecret, ""),
			Secure: true,
		})
		if err != nil {
			panic(fmt.Errorf("minio init error: %w", err))
		}
		permanent := storage.NewMinioStorage(minioClient, opts.s3Bucket)
		cache := storage.NewDBStorage(bdb, []byte("storage-cache"))
		cached, err := storage.NewCachedStorage(cache, permanent, opts.cacheMaxBytes)
		if err != nil {
			panic(fmt.Errorf("cached storage init error: %w", err))
		}
		srv.Storage = cached
	}

	fmt.Println("listening on", opts.listenAddr)
	panic(nethttp.ListenAndServe(opts.listenAddr, srv.Router()))
}
