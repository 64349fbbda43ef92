package ingest

// Collection describes one remote entity type. The registry below is the
// full set of collections synced per organization, in sync order.
type Collection struct {
	Name    string
	Mapping *Mapping
	// Folders fans the sync out into one sub-checkpoint per folder.
	Folders []string
	// ArchiveType enables archive-file ingestion for high-volume
	// collections when configured.
	ArchiveType string
}

// MessageFolders are the mailbox folders messages are synced from, each
// under its own sub-checkpoint.
var MessageFolders = []string{"inbox", "flows", "archived", "outbox", "incoming", "sent"}

var deviceMapping = &Mapping{Fields: []FieldSpec{
	{Remote: "power_status", Kind: KindScalar},
	{Remote: "power_source", Kind: KindScalar},
	{Remote: "power_level", Kind: KindScalar},
	{Remote: "name", Kind: KindScalar},
	{Remote: "network_type", Kind: KindScalar},
}}

var runCountsMapping = &Mapping{Fields: []FieldSpec{
	{Remote: "active", Kind: KindScalar},
	{Remote: "completed", Kind: KindScalar},
	{Remote: "expired", Kind: KindScalar},
	{Remote: "interrupted", Kind: KindScalar},
}}

var runValueMapping = &Mapping{Fields: []FieldSpec{
	{Remote: "value", Kind: KindScalar},
	{Remote: "category", Kind: KindScalar},
	{Remote: "node", Kind: KindScalar},
	{Remote: "time", Kind: KindScalar},
}}

var boundaryRefMapping = &Mapping{Fields: []FieldSpec{
	{Remote: "osm_id", Kind: KindScalar},
	{Remote: "name", Kind: KindScalar},
}}

var geometryMapping = &Mapping{Fields: []FieldSpec{
	{Remote: "type", Kind: KindScalar},
	{Remote: "coordinates", Kind: KindScalar},
}}

var fieldRefMapping = &Mapping{Fields: []FieldSpec{
	{Remote: "key", Kind: KindScalar},
	{Remote: "label", Kind: KindScalar},
}}

// collections lists every synced entity type, replacing the original
// class-hierarchy discovery with a static registry.
var collections = []*Collection{
	{
		Name: "groups",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "uuid", Kind: KindUUID},
			{Remote: "name", Kind: KindScalar},
			{Remote: "query", Kind: KindScalar},
			{Remote: "count", Kind: KindScalar},
		}},
	},
	{
		Name: "contacts",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "uuid", Kind: KindUUID},
			{Remote: "name", Kind: KindScalar},
			{Remote: "language", Kind: KindScalar},
			{Remote: "urns", Kind: KindScalar},
			{Remote: "groups", Kind: KindReferenceList, RefCollection: "groups"},
			{Remote: "fields", Kind: KindScalar},
			{Remote: "blocked", Kind: KindScalar},
			{Remote: "stopped", Kind: KindScalar},
			{Remote: "created_on", Kind: KindScalar},
			{Remote: "modified_on", Kind: KindScalar},
		}},
	},
	{
		Name: "fields",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "key", Kind: KindScalar},
			{Remote: "label", Kind: KindScalar},
			{Remote: "value_type", Kind: KindScalar},
		}},
	},
	{
		Name: "channels",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "uuid", Kind: KindUUID},
			{Remote: "name", Kind: KindScalar},
			{Remote: "address", Kind: KindScalar},
			{Remote: "country", Kind: KindScalar},
			{Remote: "device", Kind: KindEmbedded, Ref: deviceMapping},
			{Remote: "last_seen", Kind: KindScalar},
			{Remote: "created_on", Kind: KindScalar},
		}},
	},
	{
		Name: "channel_events",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "id", Kind: KindRemoteID},
			{Remote: "type", Kind: KindScalar},
			{Remote: "contact", Kind: KindReference, RefCollection: "contacts"},
			{Remote: "channel", Kind: KindReference, RefCollection: "channels"},
			{Remote: "extra", Kind: KindScalar},
			{Remote: "occurred_on", Kind: KindScalar},
			{Remote: "created_on", Kind: KindScalar},
		}},
	},
	{
		Name: "broadcasts",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "id", Kind: KindRemoteID},
			{Remote: "urns", Kind: KindScalar},
			{Remote: "contacts", Kind: KindReferenceList, RefCollection: "contacts"},
			{Remote: "groups", Kind: KindReferenceList, RefCollection: "groups"},
			{Remote: "text", Kind: KindScalar},
			{Remote: "created_on", Kind: KindScalar},
		}},
	},
	{
		Name: "campaigns",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "uuid", Kind: KindUUID},
			{Remote: "name", Kind: KindScalar},
			{Remote: "archived", Kind: KindScalar},
			{Remote: "group", Kind: KindReference, RefCollection: "groups"},
			{Remote: "created_on", Kind: KindScalar},
		}},
	},
	{
		Name: "labels",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "uuid", Kind: KindUUID},
			{Remote: "name", Kind: KindScalar},
			{Remote: "count", Kind: KindScalar},
		}},
	},
	{
		Name: "flows",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "uuid", Kind: KindUUID},
			{Remote: "name", Kind: KindScalar},
			{Remote: "archived", Kind: KindScalar},
			{Remote: "labels", Kind: KindReferenceList, RefCollection: "labels"},
			{Remote: "expires", Kind: KindScalar},
			{Remote: "runs", Kind: KindEmbedded, Ref: runCountsMapping},
			{Remote: "created_on", Kind: KindScalar},
			{Remote: "modified_on", Kind: KindScalar},
		}},
	},
	{
		Name: "flow_starts",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "uuid", Kind: KindUUID},
			{Remote: "flow", Kind: KindReference, RefCollection: "flows"},
			{Remote: "groups", Kind: KindReferenceList, RefCollection: "groups"},
			{Remote: "contacts", Kind: KindReferenceList, RefCollection: "contacts"},
			{Remote: "restart_participants", Kind: KindScalar},
			{Remote: "status", Kind: KindScalar},
			{Remote: "extra", Kind: KindScalar},
			{Remote: "created_on", Kind: KindScalar},
			{Remote: "modified_on", Kind: KindScalar},
		}},
	},
	{
		Name: "campaign_events",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "uuid", Kind: KindUUID},
			{Remote: "campaign", Kind: KindReference, RefCollection: "campaigns"},
			{Remote: "relative_to", Kind: KindEmbedded, Ref: fieldRefMapping},
			{Remote: "offset", Kind: KindScalar},
			{Remote: "unit", Kind: KindScalar},
			{Remote: "delivery_hour", Kind: KindScalar},
			{Remote: "flow", Kind: KindReference, RefCollection: "flows"},
			{Remote: "message", Kind: KindScalar},
			{Remote: "created_on", Kind: KindScalar},
		}},
	},
	{
		Name:        "messages",
		Folders:     MessageFolders,
		ArchiveType: "message",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "id", Kind: KindRemoteID},
			{Remote: "broadcast", Kind: KindScalar},
			{Remote: "contact", Kind: KindReference, RefCollection: "contacts"},
			{Remote: "urn", Kind: KindScalar},
			{Remote: "channel", Kind: KindReference, RefCollection: "channels"},
			{Remote: "direction", Kind: KindScalar},
			{Remote: "type", Kind: KindScalar},
			{Remote: "status", Kind: KindScalar},
			{Remote: "visibility", Kind: KindScalar},
			{Remote: "text", Kind: KindScalar},
			{Remote: "labels", Kind: KindReferenceList, RefCollection: "labels"},
			{Remote: "created_on", Kind: KindScalar},
			{Remote: "modified_on", Kind: KindScalar},
			{Remote: "sent_on", Kind: KindScalar},
		}},
	},
	{
		Name:        "runs",
		ArchiveType: "run",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "id", Kind: KindRemoteID},
			{Remote: "flow", Kind: KindReference, RefCollection: "flows"},
			{Remote: "contact", Kind: KindReference, RefCollection: "contacts"},
			{Remote: "start", Kind: KindReference, RefCollection: "flow_starts"},
			{Remote: "responded", Kind: KindScalar},
			{Remote: "values", Kind: KindEmbeddedMap, Ref: runValueMapping},
			{Remote: "exit_type", Kind: KindScalar},
			{Remote: "exited_on", Kind: KindScalar},
			{Remote: "created_on", Kind: KindScalar},
			{Remote: "modified_on", Kind: KindScalar},
		}},
	},
	{
		Name: "boundaries",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "osm_id", Kind: KindScalar},
			{Remote: "name", Kind: KindScalar},
			{Remote: "level", Kind: KindScalar},
			{Remote: "parent", Kind: KindEmbedded, Ref: boundaryRefMapping},
			{Remote: "geometry", Kind: KindEmbedded, Ref: geometryMapping},
			{Remote: "created_on", Kind: KindScalar},
			{Remote: "modified_on", Kind: KindScalar},
		}},
	},
	{
		Name: "resthooks",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "resthook", Kind: KindScalar},
			{Remote: "created_on", Kind: KindScalar},
			{Remote: "modified_on", Kind: KindScalar},
		}},
	},
	{
		Name: "resthook_events",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "resthook", Kind: KindScalar},
			{Remote: "data", Kind: KindScalar},
			{Remote: "created_on", Kind: KindScalar},
		}},
	},
	{
		Name: "resthook_subscribers",
		Mapping: &Mapping{Fields: []FieldSpec{
			{Remote: "id", Kind: KindRemoteID},
			{Remote: "resthook", Kind: KindScalar},
			{Remote: "target_url", Kind: KindScalar},
			{Remote: "created_on", Kind: KindScalar},
		}},
	},
}

// Collections returns every registered collection in sync order.
func Collections() []*Collection {
	return collections
}

// CollectionByName looks up a registered collection.
func CollectionByName(name string) (*Collection, bool) {
	for _, c := range collections {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
