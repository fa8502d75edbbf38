// Command clock_logger follows clockd's websocket status stream and writes
// each update to InfluxDB.
package main

import (
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"
	influxdb2 "github.com/influxdata/influxdb-client-go"
	"github.com/influxdata/influxdb-client-go/api"
)

func main() {
	server := os.Getenv("INFLUX_SERVER")
	if server == "" {
		server = "http://localhost:9999"
	}
	org := os.Getenv("INFLUX_ORG")
	if org == "" {
		org = "w1xm"
	}
	client := influxdb2.NewClient(server, os.Getenv("INFLUX_TOKEN"))
	defer client.Close()
	// Non-blocking write client.
	writeApi := client.WriteApi(org, "stepclock")
	defer writeApi.Close()
	go func() {
		for err := range writeApi.Errors() {
			log.Printf("write error: %v", err)
		}
	}()
	for {
		if err := logData(writeApi); err != nil {
			log.Print(err)
		}
		time.Sleep(1 * time.Second)
	}
}

func logData(writeApi api.WriteApi) error {
	url := os.Getenv("CLOCKD_ADDRESS")
	if url == "" {
		url = "ws://localhost:8502/api/ws"
	}
	defer writeApi.Flush()
	var dialer websocket.Dialer
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	for {
		var status map[string]interface{}
		if err := conn.ReadJSON(&status); err != nil {
			return err
		}
		p := influxdb2.NewPoint("stepclock.status",
			nil,
			status,
			time.Now(),
		)
		writeApi.WritePoint(p)
	}
}
