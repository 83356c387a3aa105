package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"nutriplan/models"
	"nutriplan/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
)

// PushService registers mobile devices as SNS endpoints and publishes to them.
type PushService struct {
	devices     DeviceStore
	sns         *awssns.Client
	platformArn string
}

func NewPushService(ctx context.Context, devices DeviceStore, region, platformArn string) (*PushService, error) {
	if region == "" {
		region = "ap-south-1"
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config for SNS: %w", err)
	}
	return &PushService{
		devices:     devices,
		sns:         awssns.NewFromConfig(cfg),
		platformArn: platformArn,
	}, nil
}

type RegisterDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) appArn(platform string) (string, error) {
	switch strings.ToLower(platform) {
	case "android", "ios":
		if p.platformArn == "" {
			return "", errors.New("SNS_FCM_ARN not set")
		}
		return p.platformArn, nil
	default:
		verr := &utils.ValidationError{}
		verr.Add("platform", "must be android or ios")
		return "", verr
	}
}

func (p *PushService) RegisterDevice(ctx context.Context, userID, platform, token string) (*models.UserDevice, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	arn, err := p.appArn(platform)
	if err != nil {
		return nil, err
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(arn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, fmt.Errorf("create platform endpoint: %w", err)
	}

	hash := tokenHash(token)
	dev, err := p.devices.FindDevice(ctx, userID, hash)
	switch {
	case errors.Is(err, utils.ErrNotFound):
		dev = &models.UserDevice{UserID: userID, TokenHash: hash, Enabled: true, CreatedAt: time.Now()}
	case err != nil:
		return nil, err
	}
	dev.Platform = strings.ToLower(platform)
	dev.EndpointARN = aws.ToString(out.EndpointArn)
	dev.UpdatedAt = time.Now()
	if err := p.devices.SaveDevice(ctx, dev); err != nil {
		return nil, err
	}
	return dev, nil
}

func (p *PushService) SetEnabled(ctx context.Context, userID string, enabled bool) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return p.devices.SetDevicesEnabled(ctx, userID, enabled)
}

func (p *PushService) PushToUser(ctx context.Context, userID, title, body string, data map[string]string) error {
	endpoints, err := p.devices.ListEnabledDevices(ctx, userID)
	if err != nil || len(endpoints) == 0 {
		return err
	}

	raw, err := json.Marshal(map[string]any{
		"default": body,
		"GCM": map[string]any{
			"notification": map[string]string{"title": title, "body": body},
			"data":         data,
		},
	})
	if err != nil {
		return err
	}

	var errs []error
	for _, d := range endpoints {
		_, err := p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("publish to %s: %w", d.EndpointARN, err))
		}
	}
	return errors.Join(errs...)
}
