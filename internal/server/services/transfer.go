package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/lockbox/internal/records"
	"github.com/dmitrijs2005/lockbox/internal/server/config"
	"github.com/dmitrijs2005/lockbox/internal/tabular"
	"github.com/dmitrijs2005/lockbox/internal/xlsx"
)

const (
	exportLinkValidity = 15 * time.Minute
	maxImportReasons   = 10
)

// Seams for testing the AWS wiring without a live endpoint.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// recordLister is the slice of RecordService the transfer flow needs.
type recordLister interface {
	List(ctx context.Context, ownerID string) (records.Collection, error)
	Save(ctx context.Context, ownerID, id string, kind records.Kind, in records.Input) (*records.Record, error)
}

// ImportSummary is what the caller shows after a bulk import. Partial
// success is the expected common case, not an error state.
type ImportSummary struct {
	Added   int      `json:"added"`
	Failed  int      `json:"failed"`
	Reasons []string `json:"reasons,omitempty"`
}

// TransferService moves whole vaults in and out as xlsx workbooks, either as
// a direct download or as a time-limited link through S3-compatible storage.
type TransferService struct {
	recs   recordLister
	config *config.Config
}

func NewTransferService(recs recordLister, cfg *config.Config) *TransferService {
	return &TransferService{recs: recs, config: cfg}
}

// ExportFileName names the download after the export date.
func ExportFileName() string {
	return fmt.Sprintf("lockbox_%s.xlsx", time.Now().Format("2006-01-02"))
}

// Export serializes the owner's whole vault into xlsx bytes.
func (s *TransferService) Export(ctx context.Context, ownerID string) ([]byte, error) {
	c, err := s.recs.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	data, err := xlsx.Encode(tabular.Export(c))
	if err != nil {
		return nil, fmt.Errorf("error encoding export: %w", err)
	}
	return data, nil
}

// ExportLink builds the export, uploads it to the object store, and returns
// a presigned download URL valid for a short window.
func (s *TransferService) ExportLink(ctx context.Context, ownerID string) (string, error) {
	data, err := s.Export(ctx, ownerID)
	if err != nil {
		return "", err
	}

	client, err := s.getS3Client()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := exportStorageKey(ownerID)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	}); err != nil {
		return "", fmt.Errorf("error uploading export: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(exportLinkValidity))
	if err != nil {
		return "", fmt.Errorf("error presigning export link: %w", err)
	}

	return req.URL, nil
}

// Import parses an xlsx stream and writes every valid row as a new record
// for the owner. Rows are independent: a rejected or failed row never stops
// the rest, and the summary counts each outcome separately.
func (s *TransferService) Import(ctx context.Context, ownerID string, r io.Reader) (*ImportSummary, error) {
	wb, err := xlsx.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing workbook: %w", err)
	}

	res := tabular.Import(wb, ownerID)

	summary := &ImportSummary{Failed: len(res.Rejected)}

	reasons := make([]string, 0, len(res.Rejected))
	for _, rej := range res.Rejected {
		reasons = append(reasons, rej.String())
	}

	for _, rec := range res.Added {
		in := records.Input{
			ServiceName:      rec.ServiceName,
			Username:         rec.Username,
			Password:         rec.Password,
			Notes:            rec.Notes,
			SiteURL:          rec.SiteURL,
			InsuranceCompany: rec.InsuranceCompany,
			InsuranceNumber:  rec.InsuranceNumber,
		}
		if _, err := s.recs.Save(ctx, ownerID, "", rec.Kind, in); err != nil {
			summary.Failed++
			reasons = append(reasons, fmt.Sprintf("%s %q: %v", rec.Kind, rec.ServiceName, err))
			continue
		}
		summary.Added++
	}

	// One cap over both rejection and write-failure reasons, so the
	// trailing remainder line counts everything not shown.
	if extra := len(reasons) - maxImportReasons; extra > 0 {
		reasons = append(reasons[:maxImportReasons], fmt.Sprintf("... and %d more", extra))
	}
	summary.Reasons = reasons

	return summary, nil
}

func exportStorageKey(ownerID string) string {
	d := time.Now()
	return fmt.Sprintf("exports/%s/%d/%d/%d/%v.xlsx", ownerID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *TransferService) getS3Client() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}
