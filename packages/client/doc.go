// Package client dispatches actions to a search engine cluster.
//
// A Client owns a ServerList, a request builder and a transport. Execute
// runs one action synchronously:
//
//	servers, err := client.NewServerList("http://localhost:9200")
//	if err != nil {
//		return err
//	}
//	c := client.New(servers, client.WithCompression(true))
//	defer c.Close()
//
//	doc, err := client.Execute(ctx, c, action.NewGet("twitter", "tweet", "1"))
//
// Execute never retries and never switches servers after a failure.
package client
