package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"strings"

	"folio/config"
	"folio/infras/otel"
	"folio/shared/constant"
	"folio/shared/dto"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

type s3Storage struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func (svc *s3Storage) UploadFile(ctx context.Context, directory string, file dto.FileUpload) (string, error) {
	return svc.UploadFileBytes(ctx, directory, uniqueName(file), file.ContentType, file.Content)
}

func (svc *s3Storage) UploadFileBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFileBytes")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		otelAttrFileName:  fileName,
		otelAttrDirectory: directory,
	})

	objectKey := path.Join(directory, fileName)
	fileReader := bytes.NewReader(fileData)

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.Config.External.S3.BucketName),
		Key:           aws.String(objectKey),
		Body:          fileReader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(fileReader.Size()),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.objectURL(objectKey), nil
}

func (svc *s3Storage) DeleteFile(ctx context.Context, directory, objectName string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		otelAttrFileName:  objectName,
		otelAttrDirectory: directory,
	})

	_, err = svc.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.Config.External.S3.BucketName),
		Key:    aws.String(path.Join(directory, objectName)),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (svc *s3Storage) List(ctx context.Context, directory string) (objects []Object, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(&err)

	input := &s3.ListObjectsV2Input{Bucket: aws.String(svc.Config.External.S3.BucketName)}
	if directory != "" {
		input.Prefix = aws.String(directory + "/")
	}

	objects = []Object{}
	paginator := s3.NewListObjectsV2Paginator(svc.Client, input)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list S3 objects: %w", err)
		}

		for _, item := range page.Contents {
			key := aws.ToString(item.Key)

			dir, name := splitKey(key)
			if name == "" {
				continue
			}

			objects = append(objects, Object{
				Directory:   dir,
				Name:        name,
				ContentType: mime.TypeByExtension(path.Ext(name)),
				Size:        aws.ToInt64(item.Size),
				URL:         svc.objectURL(key),
				CreatedAt:   aws.ToTime(item.LastModified),
			})
		}
	}

	return objects, nil
}

func (svc *s3Storage) PublicURL(_ context.Context, directory, objectName string) (string, error) {
	return svc.objectURL(path.Join(directory, objectName)), nil
}

func (svc *s3Storage) GetObjectNameFromURL(url string) (directory, objectName string) {
	publicPrefix := strings.TrimSuffix(svc.Config.External.S3.PublicDomain, "/") + "/"
	if key, ok := strings.CutPrefix(url, publicPrefix); ok && publicPrefix != "/" {
		return splitKey(key)
	}

	bucketURL := fmt.Sprintf("%s/%s/", strings.TrimSuffix(svc.Config.External.S3.APIEndpoint, "/"), svc.Config.External.S3.BucketName)
	if key, ok := strings.CutPrefix(url, bucketURL); ok {
		return splitKey(key)
	}

	return constant.Empty, constant.Empty
}

func (svc *s3Storage) Usage(ctx context.Context) (usage Usage, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Usage")
	defer scope.End()
	defer scope.TraceIfError(&err)

	objects, err := svc.List(ctx, "")
	if err != nil {
		return usage, err
	}

	usage.Directories = map[string]DirectoryUsage{}
	for _, obj := range objects {
		usage.add(obj)
	}

	return usage, nil
}

func (svc *s3Storage) objectURL(objectKey string) string {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(svc.Config.External.S3.PublicDomain, "/"), objectKey)
}

func NewS3(config *config.Config, otel otel.Otel) Storage {
	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKeyID,
		config.External.S3.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.TODO(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(config.External.S3.APIEndpoint)
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &s3Storage{
		Client: s3Client,
		Config: config,
		otel:   otel,
	}
}
