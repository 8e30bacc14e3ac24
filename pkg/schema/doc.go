// Package schema owns the persisted JSON Schema document and the tag list
// that feeds its tag enumeration.
//
// Reading and updating are separate steps. Store.Load returns an immutable
// Schema snapshot and never touches the disk beyond reading; Store.SyncTags
// canonicalizes the tag list, rewrites the schema's tag enumeration and
// returns the refreshed snapshot.
//
//	store := schema.NewStore("libraries-schema.json", "tags.txt")
//	snap, err := store.SyncTags(ctx)
//	if err != nil {
//		return err
//	}
//	fmt.Println(snap.Tags())
package schema
