package minio

import (
	"Meridian/internal/api/config"
	"context"
	"fmt"
	"net/url"
	"time"
)

// GetPublicURL 将对象名解析为外部可访问的 URL
// 公共桶直接拼接外网地址，私有桶走预签名，客户端未初始化时原样返回
func GetPublicURL(objectName string) string {
	if objectName == "" || Client == nil {
		return objectName
	}

	cfg := config.Cfg.MinIO
	if cfg.UsePublicLink {
		return fmt.Sprintf("https://%s/%s/%s", cfg.ExternalEndpoint, MainBucket, objectName)
	}

	reqParams := make(url.Values)
	presigned, err := Client.PresignedGetObject(context.Background(), MainBucket, objectName, time.Hour*24, reqParams)
	if err != nil {
		return objectName
	}
	return presigned.String()
}
