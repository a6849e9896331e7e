// Package trigger decodes Firestore document-change events delivered to the
// service and turns them into the before/after snapshots the notification
// workflows consume.
//
// Events use the Cloud Functions Firestore payload:
//
//	{
//	  "oldValue":   {"name": "...", "fields": {...}, "createTime": "...", "updateTime": "..."},
//	  "value":      {"name": "...", "fields": {...}, "createTime": "...", "updateTime": "..."},
//	  "updateMask": {"fieldPaths": ["status"]}
//	}
//
// where every field is a typed value such as {"stringValue": "approved"}.
package trigger
