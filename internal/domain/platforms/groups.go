package platforms

import "github.com/samber/lo"

// GroupDef maps a group key to the ordered platform ids it covers.
type GroupDef struct {
	Key string
	IDs []int
}

// DefaultGroups is the fixed grouping table. Order is the display order.
var DefaultGroups = []GroupDef{
	{Key: "playstation", IDs: []int{7, 8, 9, 48, 167}},
	{Key: "xbox", IDs: []int{11, 12, 49, 169}},
	{Key: "nintendo", IDs: []int{4, 18, 21, 130, 508, 5, 41}},
	{Key: "sega", IDs: []int{30, 78, 35, 64, 29, 32, 84}},
	{Key: "pc", IDs: []int{6, 13, 14, 3}},
	{Key: "mobile", IDs: []int{39, 34, 73, 74}},
	{Key: "handheld", IDs: []int{33, 24, 22, 37, 20, 119, 120}},
}

// GroupPlatforms buckets fetched platforms using DefaultGroups.
func GroupPlatforms(fetched []Platform) []Group {
	return GroupWith(DefaultGroups, fetched)
}

// GroupWith buckets fetched platforms by defs. A group is emitted only when at
// least one fetched platform belongs to it; platforms outside every group are
// dropped. IDs always carries the full id set of the definition so a filter
// on the group matches every console it covers, fetched or not.
func GroupWith(defs []GroupDef, fetched []Platform) []Group {
	return lo.FilterMap(defs, func(def GroupDef, _ int) (Group, bool) {
		members := lo.Filter(fetched, func(p Platform, _ int) bool {
			return lo.Contains(def.IDs, p.ID)
		})
		if len(members) == 0 {
			return Group{}, false
		}
		return Group{
			GroupKey:    def.Key,
			DisplayName: DisplayName(def.Key),
			IDs:         append([]int(nil), def.IDs...),
			Platforms:   members,
		}, true
	})
}

// Keys lists the group keys of groups in order.
func Keys(groups []Group) []string {
	return lo.Map(groups, func(g Group, _ int) string { return g.GroupKey })
}
