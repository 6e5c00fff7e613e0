// Package model defines the core data structures used throughout
// the xkcd-downloader application.
//
// # Metadata
//
// Metadata is the decoded info.0.json document of a comic. It is kept as a
// generic map so that every field the catalog returns is written back to disk:
//
//	meta := model.Metadata{"num": 353.0, "img": "https://imgs.xkcd.com/comics/python.png"}
//	id, _ := meta.Num()
//	meta.SetDownloadedImage("https://imgs.xkcd.com/comics/python_2x.png")
//
// # Target
//
// Target lists the candidate image URLs for a comic, in the order they
// should be tried, together with the local file name.
//
// # Requests
//
// RequestSpec is a parsed command line token, either "N" or "N-M":
//
//	specs, err := model.ParseRequests([]string{"10", "5-7"})
//	ids := model.Expand(specs) // 10, 5, 6, 7
package model
