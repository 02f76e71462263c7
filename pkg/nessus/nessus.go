package nessus

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/user/nessus2csv/pkg/engine"
)

// XML structures for the .nessus (v2) report format
type ClientData struct {
	XMLName xml.Name `xml:"NessusClientData_v2"`
	Reports []Report `xml:"Report"`
}

type Report struct {
	Name  string       `xml:"name,attr"`
	Hosts []ReportHost `xml:"ReportHost"`
}

type ReportHost struct {
	Name       string       `xml:"name,attr"`
	Properties []HostTag    `xml:"HostProperties>tag"`
	Items      []ReportItem `xml:"ReportItem"`
}

type HostTag struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type ReportItem struct {
	Port         string    `xml:"port,attr"`
	ServiceName  string    `xml:"svc_name,attr"`
	Protocol     string    `xml:"protocol,attr"`
	Severity     string    `xml:"severity,attr"`
	PluginID     string    `xml:"pluginID,attr"`
	PluginName   string    `xml:"pluginName,attr"`
	PluginFamily string    `xml:"pluginFamily,attr"`
	Children     []Element `xml:",any"`
}

// Element is any child of a ReportItem (description, risk_factor, cve, ...).
type Element struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// Parse decodes a report from r.
func Parse(r io.Reader) (*ClientData, error) {
	var data ClientData
	if err := xml.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(err, "failed to decode nessus report")
	}
	return &data, nil
}

// ParseFile reads and decodes the report at path. Errors name the file.
func ParseFile(path string) (*ClientData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %q", path)
	}
	defer f.Close()

	data, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %q", path)
	}
	return data, nil
}

// Document converts the report into the scanner-neutral model. Hosts from every
// Report element are concatenated in file order.
func (c *ClientData) Document(source string) engine.ScanDocument {
	doc := engine.ScanDocument{Source: source}
	for _, rep := range c.Reports {
		for _, h := range rep.Hosts {
			host := engine.HostEntry{
				Name:       h.Name,
				Properties: make([]engine.Field, 0, len(h.Properties)),
				Findings:   make([]engine.FindingEntry, 0, len(h.Items)),
			}
			for _, tag := range h.Properties {
				host.Properties = append(host.Properties, engine.Field{Name: tag.Name, Value: tag.Value})
			}
			for _, item := range h.Items {
				host.Findings = append(host.Findings, item.finding())
			}
			doc.Hosts = append(doc.Hosts, host)
		}
	}
	return doc
}

func (i ReportItem) finding() engine.FindingEntry {
	f := engine.FindingEntry{
		Port:       i.Port,
		PluginName: i.PluginName,
		PluginID:   i.PluginID,
		Fields:     make([]engine.Field, 0, len(i.Children)),
	}
	for _, c := range i.Children {
		f.Fields = append(f.Fields, engine.Field{Name: c.XMLName.Local, Value: c.Value})
	}
	return f
}

// Load parses the file at path and returns it as a ScanDocument.
func Load(path string) (engine.ScanDocument, error) {
	data, err := ParseFile(path)
	if err != nil {
		return engine.ScanDocument{}, err
	}
	return data.Document(path), nil
}
