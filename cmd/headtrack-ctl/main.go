// headtrack-ctl drives a running daemon over its REST API.
//
// Usage:
//
//	headtrack-ctl status
//	headtrack-ctl tuning
//	headtrack-ctl tuning '{"smoothing":0.5}'
//	headtrack-ctl recenter
//	headtrack-ctl reset
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/teslashibe/go-headtrack/internal/config"
	"github.com/teslashibe/go-headtrack/internal/httpc"
)

func main() {
	addr := flag.String("addr", "http://localhost:"+config.WebPort(), "Daemon address")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "status":
		err = get(*addr + "/api/status")
	case "tuning":
		if len(args) > 1 {
			err = post(*addr+"/api/tuning", []byte(args[1]))
		} else {
			err = get(*addr + "/api/tuning")
		}
	case "recenter":
		err = post(*addr+"/api/recenter", nil)
	case "reset":
		err = post(*addr+"/api/reset", nil)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func get(url string) error {
	resp, err := httpc.Get(url)
	if err != nil {
		return err
	}
	return dump(resp.Body, resp.StatusCode)
}

func post(url string, body []byte) error {
	resp, err := httpc.Post(url, "application/json", body)
	if err != nil {
		return err
	}
	return dump(resp.Body, resp.StatusCode)
}

// dump pretty-prints the JSON response body
func dump(body io.ReadCloser, status int) error {
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if status >= 400 {
		return fmt.Errorf("daemon returned %d: %s", status, data)
	}

	var buf json.RawMessage
	var out []byte
	if json.Unmarshal(data, &buf) == nil {
		if pretty, err := json.MarshalIndent(buf, "", "  "); err == nil {
			out = pretty
		}
	}
	if out == nil {
		out = data
	}
	fmt.Println(string(out))
	return nil
}
