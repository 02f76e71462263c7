package nessusapi

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNoSuchFolder = errors.New("no such folder")
	ErrEmptyFolder  = errors.New("folder does not contain reports")
)

type Folder struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type Scan struct {
	ID       int    `json:"id"`
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	FolderID int    `json:"folder_id"`
	Status   string `json:"status"`
}

// ScanList is the body of GET /scans.
type ScanList struct {
	Folders []Folder `json:"folders"`
	Scans   []Scan   `json:"scans"`
}

func (l *ScanList) CountInFolder(folderID int) int {
	n := 0
	for _, s := range l.Scans {
		if s.FolderID == folderID {
			n++
		}
	}
	return n
}

// FolderByName returns the first folder called name.
func (l *ScanList) FolderByName(name string) (Folder, bool) {
	for _, f := range l.Folders {
		if f.Name == name {
			return f, true
		}
	}
	return Folder{}, false
}

// Select returns the scans to export for folderName. "all", in any case, selects every scan.
func (l *ScanList) Select(folderName string) ([]Scan, error) {
	if strings.EqualFold(folderName, "all") {
		return l.Scans, nil
	}

	folder, ok := l.FolderByName(folderName)
	if !ok {
		return nil, errors.Wrap(ErrNoSuchFolder, folderName)
	}

	var scans []Scan
	for _, s := range l.Scans {
		if s.FolderID == folder.ID {
			scans = append(scans, s)
		}
	}
	if len(scans) == 0 {
		return nil, errors.Wrap(ErrEmptyFolder, folderName)
	}
	return scans, nil
}

// Tree renders folders with their scans, one folder per block.
func (l *ScanList) Tree() string {
	var sb strings.Builder
	for _, f := range l.Folders {
		sb.WriteString(fmt.Sprintf("\\%s - (%d)\\\n", f.Name, l.CountInFolder(f.ID)))
		for _, s := range l.Scans {
			if s.FolderID == f.ID {
				sb.WriteString(fmt.Sprintf("\t%q - uuid: %s\n", s.Name, s.UUID))
			}
		}
	}
	return sb.String()
}

var unsafeNameChars = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

// FileName is the local name used for a downloaded export.
func FileName(scanName string, fileID int) string {
	return fmt.Sprintf("nessus_%s_%d.nessus", unsafeNameChars.Replace(scanName), fileID)
}
