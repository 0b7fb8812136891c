package action

import (
	"context"
	"fmt"
	"sort"

	"wayfarer/internal/domain/interaction"
	"wayfarer/internal/domain/world"
)

type infoActionHandler struct{ BaseHandler }

func (infoActionHandler) Execute(_ context.Context, _ *Engine, ac *ActionContext) (interaction.Result, error) {
	st := ac.View.Object
	cfg := ac.Interaction()
	desc := orDefault(world.PropString(cfg.Raw, "description"), world.PropString(st.Properties, "description"))
	data := map[string]any{
		"target":        ac.TargetRef(),
		"name":          ac.View.Name,
		"description":   desc,
		"state":         st.State,
		"content_count": len(st.Contents),
	}

	var msg string
	switch ac.In.Type {
	case interaction.ObjectInspect:
		data["interactions"] = interactionVerbs(st.Properties)
		msg = fmt.Sprintf("You inspect the %s closely. It is %s.", ac.View.Name, st.State)
	case interaction.ObjectSearch:
		data["contents"] = append([]string{}, st.Contents...)
		msg = fmt.Sprintf("You search the %s and find %d item(s).", ac.View.Name, len(st.Contents))
	default:
		msg = fmt.Sprintf("You examine the %s.", ac.View.Name)
	}
	if desc != "" && ac.In.Type != interaction.ObjectSearch {
		msg += " " + desc
	}
	return interaction.Succeed(msg, data), nil
}

func interactionVerbs(props map[string]any) []string {
	raw := world.PropMap(props, "interactions")
	out := make([]string, 0, len(raw))
	for verb := range raw {
		out = append(out, verb)
	}
	sort.Strings(out)
	return out
}
