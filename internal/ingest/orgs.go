package ingest

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"rapidpro_warehouse/internal/domain"
)

// ImportOrg fetches the remote organization behind an API token and upserts
// it locally, keyed by that token. Server is stored alongside so every later
// sync talks to the same host the org was registered with.
func ImportOrg(ctx context.Context, client RemoteClient, orgs OrganizationStore, server, apiToken string) (*domain.Organization, error) {
	remote, err := client.GetOrg(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch org: %w", err)
	}

	org := &domain.Organization{
		APIToken: apiToken,
		Server:   server,
		IsActive: true,
	}
	if v, ok := remote["name"].(string); ok {
		org.Name = v
	}
	if v, ok := remote["country"].(string); ok {
		org.Country = &v
	}
	if v, ok := remote["primary_language"].(string); ok {
		org.PrimaryLanguage = &v
	}
	if langs, ok := remote["languages"].([]any); ok {
		for _, l := range langs {
			if s, ok := l.(string); ok {
				org.Languages = append(org.Languages, s)
			}
		}
	}
	if org.Languages == nil {
		org.Languages = pq.StringArray{}
	}
	if v, ok := remote["credits"].(map[string]any); ok {
		org.Credits = domain.JSONMap(v)
	} else {
		org.Credits = domain.JSONMap{}
	}
	if v, ok := remote["timezone"].(string); ok {
		org.Timezone = &v
	}
	if v, ok := remote["date_style"].(string); ok {
		org.DateStyle = &v
	}
	if v, ok := remote["anon"].(bool); ok {
		org.Anon = v
	}

	saved, err := orgs.UpsertByToken(ctx, org)
	if err != nil {
		return nil, fmt.Errorf("save org: %w", err)
	}
	return saved, nil
}
