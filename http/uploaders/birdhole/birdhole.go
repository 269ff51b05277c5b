package birdhole

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"presetbird/http/request"
	"presetbird/settings"
)

// BirdHole uploads a rendered file and returns its public url.
func BirdHole(ctx context.Context, fileName string, message string, config settings.BirdholeConfig) (string, error) {
	if !config.Enabled() {
		return "", errors.New("birdhole is not configured")
	}

	upload := request.Request{
		Url:    config.Host + ":" + strconv.Itoa(config.Port) + config.EndPoint,
		Method: http.MethodPost,
		Headers: []request.Headers{
			{Key: "X-Auth-Token", Value: config.Key},
		},
		Fields: []request.Fields{
			{Key: "urllen", Value: strconv.Itoa(config.UrlLen)},
			{Key: "expiry", Value: strconv.Itoa(config.Expiry)},
			{Key: "description", Value: message},
		},
		FileName: fileName,
	}

	var response string
	if err := upload.Call(ctx, &response); err != nil {
		return "", err
	}

	var jsonResponse map[string]string
	if err := json.Unmarshal([]byte(response), &jsonResponse); err != nil {
		return "", fmt.Errorf("unexpected birdhole response: %w", err)
	}
	url, ok := jsonResponse["url"]
	if !ok || url == "" {
		return "", errors.New("birdhole response has no url")
	}
	return url, nil
}
