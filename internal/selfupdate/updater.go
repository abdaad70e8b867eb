package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// maxArchiveSize caps a release download.
const maxArchiveSize = 256 << 20

// Stage names one step of an update.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// Progress is reported once per stage.
type Progress struct {
	Stage   Stage
	Message string
}

type UpdateInput struct {
	CurrentVersion string

	// TargetVersion pins a release tag. Empty means the latest release.
	TargetVersion string
}

// release locates the published files of one tag for one platform.
type release struct {
	tag          string
	asset        string
	binary       string
	archiveURL   string
	checksumsURL string
}

// Update replaces the running binary with a release build. report may be nil.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, report func(Progress)) error {
	if report == nil {
		report = func(Progress) {}
	}
	if input.CurrentVersion == "" || input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}

	tag := input.TargetVersion
	if tag == "" {
		report(Progress{StageCheck, "Looking up the latest release..."})
		res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = res.LatestVersion
	}

	rel, err := c.releaseFor(tag, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	report(Progress{StageDownload, fmt.Sprintf("Downloading %s (%s)...", rel.tag, rel.asset)})
	archive, sum, err := c.fetch(ctx, rel.archiveURL)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report(Progress{StageVerify, "Verifying checksum..."})
	sums, _, err := c.fetch(ctx, rel.checksumsURL)
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums)[rel.asset]
	if !ok {
		return fmt.Errorf("%w: %s is not listed in checksums.txt", ErrChecksum, rel.asset)
	}
	if !strings.EqualFold(want, sum) {
		return fmt.Errorf("%w: %s has sha256 %s, release lists %s", ErrChecksum, rel.asset, sum, want)
	}

	report(Progress{StageInstall, "Installing..."})
	bin, err := unpack(archive, rel)
	if err != nil {
		return fmt.Errorf("unpack %s: %w", rel.asset, err)
	}
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("locate running binary: %w", err)
	}
	if err := install(bin, target); err != nil {
		return fmt.Errorf("install: %w", err)
	}

	report(Progress{StageDone, fmt.Sprintf("hotsquiz is now %s", rel.tag)})
	return nil
}

func (c *Checker) releaseFor(tag, goos, goarch string) (release, error) {
	asset, err := assetNameFor(goos, goarch)
	if err != nil {
		return release{}, err
	}
	base := fmt.Sprintf("%s/%s/%s/releases/download/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag)

	bin := "hotsquiz"
	if goos == "windows" {
		bin += ".exe"
	}
	return release{
		tag:          tag,
		asset:        asset,
		binary:       bin,
		archiveURL:   base + "/" + asset,
		checksumsURL: base + "/checksums.txt",
	}, nil
}

// releaseArch maps GOARCH onto the names used in release archives.
var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

func assetNameFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return "hotsquiz_Darwin_all.tar.gz", nil
	}
	arch, ok := releaseArch[goarch]
	if !ok {
		return "", fmt.Errorf("no release build for architecture %s", goarch)
	}
	switch goos {
	case "linux":
		return "hotsquiz_Linux_" + arch + ".tar.gz", nil
	case "windows":
		return "hotsquiz_Windows_" + arch + ".zip", nil
	}
	return "", fmt.Errorf("no release build for %s", goos)
}

// fetch downloads url and returns the body with its hex sha256.
func (c *Checker) fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	h := sha256.New()
	var buf bytes.Buffer
	n, err := io.Copy(io.MultiWriter(&buf, h), io.LimitReader(resp.Body, maxArchiveSize+1))
	if err != nil {
		return nil, "", err
	}
	if n > maxArchiveSize {
		return nil, "", fmt.Errorf("%s exceeds %d bytes", url, maxArchiveSize)
	}
	return buf.Bytes(), hex.EncodeToString(h.Sum(nil)), nil
}

// parseChecksums reads "<sha256>  <file>" lines. Other lines are skipped.
func parseChecksums(data []byte) map[string]string {
	sums := make(map[string]string)
	for line := range strings.SplitSeq(string(data), "\n") {
		if f := strings.Fields(line); len(f) == 2 {
			sums[f[1]] = f[0]
		}
	}
	return sums
}

func unpack(archive []byte, rel release) ([]byte, error) {
	if strings.HasSuffix(rel.asset, ".zip") {
		return unzip(archive, rel.binary)
	}
	return untar(archive, rel.binary)
}

func untar(archive []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, err
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("binary %q not found in archive", name)
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == name {
			return io.ReadAll(io.LimitReader(tr, maxArchiveSize))
		}
	}
}

func unzip(archive []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if path.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(io.LimitReader(rc, maxArchiveSize))
	}
	return nil, fmt.Errorf("binary %q not found in archive", name)
}

// install writes bin next to target and renames it over target, keeping
// target's permission bits.
func install(bin []byte, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".hotsquiz-update-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(bin); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmpName, target)
}
