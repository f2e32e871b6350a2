package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/skyezerfox/moss-ping/models"
)

// renderStatus prints the fields the chat embed used to show.
func renderStatus(w io.Writer, server string, status *models.ServerStatus, ansi bool) {
	motd := status.Description
	if ansi {
		motd = status.ANSIDescription()
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", server})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.Append([]string{"Version", fmt.Sprintf("%s (protocol %d)", status.Version.Name, status.Version.Protocol)})
	table.Append([]string{"Players", fmt.Sprintf("%d/%d", status.Players.Online, status.Players.Max)})
	table.Append([]string{"MOTD", motd})
	table.Append([]string{"Raw MOTD", string(status.RawDescription)})
	if names := status.SampleNames(); len(names) > 0 {
		table.Append([]string{"Sample", strings.Join(names, ", ")})
	}
	table.Render()

	for _, p := range status.Players.Sample {
		if _, err := p.UUID(); err != nil {
			fmt.Fprintf(w, "warning: player %q has a malformed id %q\n", p.Name, p.ID)
		}
	}
}

func writeFavicon(status *models.ServerStatus, path string) error {
	img, err := status.FaviconPNG()
	if err != nil {
		return err
	}
	if img == nil {
		return errors.New("server did not send a favicon")
	}
	return os.WriteFile(path, img, 0644)
}
