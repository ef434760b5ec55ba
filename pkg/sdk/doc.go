// Package localsearch is an in-process fuzzy search index over short
// documents (settings pages, app names, help topics).
//
// Every document has an ID and a list of tags. A query is matched against
// each document's tags in order; the first relevant tag gives the document
// its score and the matched character ranges.
//
// # Standalone index
//
//	idx, _ := localsearch.NewIndex("settings")
//	idx.AddOrUpdate(ctx, []localsearch.Document{
//	    {ID: "wifi", Tags: []string{"Wi-Fi settings", "Network"}},
//	    {ID: "bt", Tags: []string{"Bluetooth settings"}},
//	})
//	status, results := idx.Find(ctx, "wifi", 10)
//
// An Index is not safe for concurrent use; wrap it with Synchronized when
// several goroutines share it.
//
// # Registry
//
//	svc, _ := localsearch.NewService(localsearch.WithPrometheus(reg))
//	idx, _ := svc.GetIndex(ctx, "settings", localsearch.BackendLinearMap)
//
// Indexes handed out by a Service are already synchronized.
//
// # Typed index
//
//	type App struct {
//	    ID       string   `localsearch:"id"`
//	    Name     string   `localsearch:"name,tag"`
//	    Keywords []string `localsearch:"keywords,tag"`
//	}
//
//	apps, _ := localsearch.NewTypedIndex[App](idx)
//	_ = apps.UpsertBatch(ctx, items)
//	hits, _ := apps.Find(ctx, "calc", 5)
package localsearch
