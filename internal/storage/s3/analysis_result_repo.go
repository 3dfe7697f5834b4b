package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/sync/errgroup"

	"docreview/internal/domain"
	"docreview/internal/port"
)

const fetchConcurrency = 8

// AnalysisResultRepo stores each record as a JSON object under
// {prefix}/records/{id}.json and keeps an empty marker object at
// {prefix}/files/{escaped file_id}/{id} so a file's records can be listed without
// reading every record.
type AnalysisResultRepo struct {
	api    ObjectAPI
	bucket string
	prefix string
}

// NewAnalysisResultRepo creates an S3-backed AnalysisRepository.
func NewAnalysisResultRepo(api ObjectAPI, bucket, prefix string) *AnalysisResultRepo {
	return &AnalysisResultRepo{api: api, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

var _ port.AnalysisRepository = (*AnalysisResultRepo)(nil)

func (r *AnalysisResultRepo) recordKey(id string) string {
	return path.Join(r.prefix, "records", id+".json")
}

func (r *AnalysisResultRepo) indexPrefix(fileID string) string {
	return path.Join(r.prefix, "files") + "/" + url.PathEscape(fileID) + "/"
}

func (r *AnalysisResultRepo) indexKey(fileID, id string) string {
	return r.indexPrefix(fileID) + id
}

// PingContext checks the bucket is reachable.
func (r *AnalysisResultRepo) PingContext(ctx context.Context) error {
	if _, err := r.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(r.bucket)}); err != nil {
		return fmt.Errorf("s3 head bucket: %w", err)
	}
	return nil
}

func (r *AnalysisResultRepo) Create(ctx context.Context, rec *domain.AnalysisRecord) error {
	if err := r.putRecord(ctx, rec); err != nil {
		return fmt.Errorf("s3Repo.Create: %w", err)
	}
	if err := r.putIndex(ctx, rec.FileID, rec.ID); err != nil {
		return fmt.Errorf("s3Repo.Create index: %w", err)
	}
	return nil
}

func (r *AnalysisResultRepo) GetByID(ctx context.Context, id string) (*domain.AnalysisRecord, error) {
	out, err := r.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.recordKey(id)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("s3Repo.GetByID: %w", err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3Repo.GetByID read: %w", err)
	}
	var rec domain.AnalysisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("s3Repo.GetByID decode: %w", err)
	}
	return &rec, nil
}

func (r *AnalysisResultRepo) List(ctx context.Context, filter port.ListFilter) ([]domain.AnalysisRecord, error) {
	var records []domain.AnalysisRecord
	var err error
	if filter.FileID != "" {
		records, err = r.ListByFileID(ctx, filter.FileID)
	} else {
		var keys []string
		keys, err = r.listKeys(ctx, path.Join(r.prefix, "records")+"/")
		if err == nil {
			ids := make([]string, 0, len(keys))
			for _, k := range keys {
				ids = append(ids, strings.TrimSuffix(path.Base(k), ".json"))
			}
			records, err = r.fetchAll(ctx, ids)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("s3Repo.List: %w", err)
	}

	if filter.Offset >= len(records) {
		return []domain.AnalysisRecord{}, nil
	}
	records = records[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(records) {
		records = records[:filter.Limit]
	}
	return records, nil
}

func (r *AnalysisResultRepo) ListByFileID(ctx context.Context, fileID string) ([]domain.AnalysisRecord, error) {
	keys, err := r.listKeys(ctx, r.indexPrefix(fileID))
	if err != nil {
		return nil, fmt.Errorf("s3Repo.ListByFileID: %w", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, path.Base(k))
	}
	return r.fetchAll(ctx, ids)
}

func (r *AnalysisResultRepo) Update(ctx context.Context, rec *domain.AnalysisRecord) error {
	existing, err := r.GetByID(ctx, rec.ID)
	if err != nil {
		return err
	}
	if err := r.putRecord(ctx, rec); err != nil {
		return fmt.Errorf("s3Repo.Update: %w", err)
	}
	if existing.FileID != rec.FileID {
		if err := r.putIndex(ctx, rec.FileID, rec.ID); err != nil {
			return fmt.Errorf("s3Repo.Update index: %w", err)
		}
		if err := r.deleteKey(ctx, r.indexKey(existing.FileID, rec.ID)); err != nil {
			return fmt.Errorf("s3Repo.Update index: %w", err)
		}
	}
	return nil
}

func (r *AnalysisResultRepo) Delete(ctx context.Context, id string) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.deleteKey(ctx, r.indexKey(existing.FileID, id)); err != nil {
		return fmt.Errorf("s3Repo.Delete index: %w", err)
	}
	if err := r.deleteKey(ctx, r.recordKey(id)); err != nil {
		return fmt.Errorf("s3Repo.Delete: %w", err)
	}
	return nil
}

func (r *AnalysisResultRepo) putRecord(ctx context.Context, rec *domain.AnalysisRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = r.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.recordKey(rec.ID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	return err
}

func (r *AnalysisResultRepo) putIndex(ctx context.Context, fileID, id string) error {
	_, err := r.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.indexKey(fileID, id)),
		Body:   bytes.NewReader(nil),
	})
	return err
}

func (r *AnalysisResultRepo) deleteKey(ctx context.Context, key string) error {
	_, err := r.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (r *AnalysisResultRepo) listKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(r.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

// fetchAll loads records concurrently and returns them newest first. Index
// markers whose record has vanished are skipped.
func (r *AnalysisResultRepo) fetchAll(ctx context.Context, ids []string) ([]domain.AnalysisRecord, error) {
	found := make([]*domain.AnalysisRecord, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			rec, err := r.GetByID(gctx, id)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			found[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]domain.AnalysisRecord, 0, len(found))
	for _, rec := range found {
		if rec != nil {
			records = append(records, *rec)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}
