package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TopLabels : nombre de labels demandés au classifieur
const TopLabels = 25

// Client interroge le service d'inférence (classification + détection) en HTTP.
// Implémente Classifier, FaceDetector et BodyDetector.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type classifyResponse struct {
	Labels []string `json:"labels"`
}

type detectResponse struct {
	Count int `json:"count"`
}

// Classify retourne les TopLabels labels prédits pour l'image
func (c *Client) Classify(ctx context.Context, image []byte) ([]string, error) {
	var out classifyResponse
	url := fmt.Sprintf("%s/classify?top=%d", c.baseURL, TopLabels)
	if err := c.post(ctx, url, image, &out); err != nil {
		return nil, err
	}
	return out.Labels, nil
}

// DetectFaces retourne le nombre de visages détectés
func (c *Client) DetectFaces(ctx context.Context, image []byte) (int, error) {
	var out detectResponse
	if err := c.post(ctx, c.baseURL+"/detect/faces", image, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// DetectBodies retourne le nombre de silhouettes détectées
func (c *Client) DetectBodies(ctx context.Context, image []byte) (int, error) {
	var out detectResponse
	if err := c.post(ctx, c.baseURL+"/detect/bodies", image, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// post envoie l'image et décode la réponse JSON. Toute panne de l'oracle
// (réseau, 5xx, réponse illisible) est remontée comme ErrOracleUnavailable.
func (c *Client) post(ctx context.Context, url string, image []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(image))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrOracleUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	return nil
}
