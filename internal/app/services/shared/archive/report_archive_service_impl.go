package archive

import (
	"bytes"
	"context"
	"fmt"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
)

// reportArchiveService writes a JSON snapshot of every completed
// report into object storage for audit and export.
type reportArchiveService struct {
	Client     *minio.Client
	BucketName string
}

func NewReportArchiveService(client *minio.Client, bucketName string) contracts.ReportArchiver {
	return &reportArchiveService{
		Client:     client,
		BucketName: bucketName,
	}
}

func (s *reportArchiveService) Archive(ctx context.Context, order *models.LabOrder) error {
	body, err := json.Marshal(order)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	objectName := fmt.Sprintf("reports/%s/%s.json", order.ReportDate.Format("2006-01-02"), order.ID)
	reader := bytes.NewReader(body)

	_, err = s.Client.PutObject(ctx, s.BucketName, objectName, reader, int64(len(body)), minio.PutObjectOptions{
		ContentType: constvars.MIMEApplicationJSON,
	})
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, s.BucketName)
	}

	return nil
}
