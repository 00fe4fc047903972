package googledrive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// BackupFileName is the single Drive file the service reads and writes.
// Uploads overwrite it in place.
const BackupFileName = "crewledger_backup.json"

// drive.file is the most restrictive scope that still lets the app manage
// the files it creates itself.
const driveFileScope = "https://www.googleapis.com/auth/drive.file"

const (
	filesEndpoint  = "https://www.googleapis.com/drive/v3/files"
	uploadEndpoint = "https://www.googleapis.com/upload/drive/v3/files"
)

type DriveService interface {
	// RedirectURL generates the OAuth2 consent URL with a state.
	RedirectURL(state string) string
	// Exchange exchanges the authorization code for an OAuth2 token.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	// UploadBackup uploads the JSON payload, overwriting any existing
	// backup file.
	UploadBackup(ctx context.Context, token *oauth2.Token, payload []byte) error
	// DownloadBackup returns the backup file content, or ErrNoBackup when
	// none exists.
	DownloadBackup(ctx context.Context, token *oauth2.Token) ([]byte, error)
}

var ErrNoBackup = fmt.Errorf("no backup file found in Drive")

type DriveServiceImpl struct {
	config *oauth2.Config
}

func NewDriveService(clientID string, clientSecret string, redirectURL string) DriveService {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{driveFileScope},
		Endpoint:     google.Endpoint,
	}
	return &DriveServiceImpl{config: config}
}

func (d *DriveServiceImpl) RedirectURL(state string) string {
	return d.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (d *DriveServiceImpl) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return d.config.Exchange(ctx, code)
}

// findBackupFile returns the file ID of the backup, or "" when absent.
func (d *DriveServiceImpl) findBackupFile(ctx context.Context, client *http.Client) (string, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("name='%s' and trashed=false", BackupFileName))
	q.Set("spaces", "drive")
	q.Set("fields", "files(id, name)")

	resp, err := client.Get(filesEndpoint + "?" + q.Encode())
	if err != nil {
		return "", fmt.Errorf("list drive files: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("list drive files: unexpected status %d", resp.StatusCode)
	}

	var result struct {
		Files []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode drive file list: %w", err)
	}

	if len(result.Files) == 0 {
		return "", nil
	}
	return result.Files[0].ID, nil
}

func (d *DriveServiceImpl) UploadBackup(ctx context.Context, token *oauth2.Token, payload []byte) error {
	client := d.config.Client(ctx, token)

	fileID, err := d.findBackupFile(ctx, client)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	metaPart, err := writer.CreatePart(map[string][]string{
		"Content-Type": {"application/json; charset=UTF-8"},
	})
	if err != nil {
		return fmt.Errorf("create metadata part: %w", err)
	}
	meta := map[string]string{"name": BackupFileName, "mimeType": "application/json"}
	if err := json.NewEncoder(metaPart).Encode(meta); err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	filePart, err := writer.CreatePart(map[string][]string{
		"Content-Type": {"application/json"},
	})
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := filePart.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	method := http.MethodPost
	endpoint := uploadEndpoint + "?uploadType=multipart"
	if fileID != "" {
		method = http.MethodPatch
		endpoint = fmt.Sprintf("%s/%s?uploadType=multipart", uploadEndpoint, fileID)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, &body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "multipart/related; boundary="+writer.Boundary())

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("upload backup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upload backup: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (d *DriveServiceImpl) DownloadBackup(ctx context.Context, token *oauth2.Token) ([]byte, error) {
	client := d.config.Client(ctx, token)

	fileID, err := d.findBackupFile(ctx, client)
	if err != nil {
		return nil, err
	}
	if fileID == "" {
		return nil, ErrNoBackup
	}

	resp, err := client.Get(fmt.Sprintf("%s/%s?alt=media", filesEndpoint, fileID))
	if err != nil {
		return nil, fmt.Errorf("download backup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download backup: unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
