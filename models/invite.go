package models

type CreatorKind uint8

const (
	CreatorMember CreatorKind = iota
	CreatorVanity
)

// Creator says who an invite belongs to. Regular invites are created by a
// guild member; vanity invites belong to the guild itself and carry the guild
// name instead. Kind is decoded explicitly, never inferred from which fields
// happen to be set.
type Creator struct {
	Kind      CreatorKind `json:"kind"`
	MemberID  uint64      `json:"member_id,omitempty"`
	GuildID   uint64      `json:"guild_id,omitempty"`
	GuildName string      `json:"guild_name,omitempty"`
}

func MemberCreator(memberID uint64) Creator {
	return Creator{Kind: CreatorMember, MemberID: memberID}
}

func VanityCreator(guildID uint64, guildName string) Creator {
	return Creator{Kind: CreatorVanity, GuildID: guildID, GuildName: guildName}
}

// Invite mirrors one invite link's known state for a single guild.
// (invite_id, guild_id) is the composite key: invite ids are only unique
// within a guild.
type Invite struct {
	InviteID  string `gorm:"primaryKey;type:varchar(64)" json:"invite_id"`
	GuildID   uint64 `gorm:"primaryKey;autoIncrement:false" json:"guild_id"`
	CreatedAt int64  `json:"-"`
	UpdatedAt int64  `json:"-"`
	Uses      uint32 `json:"uses"`
	MaxUses   uint32 `json:"max_uses"` // 0 means unlimited

	CreatedBy Creator `gorm:"serializer:json" json:"created_by"`

	// InvitedMembers holds the members currently in the guild that joined via
	// this invite. Set semantics, enforced by AddMember.
	InvitedMembers []uint64 `gorm:"serializer:json" json:"invited_members"`

	// PreviouslyInvitedMembers keeps, in order, members that joined via this
	// invite and later left. Duplicates are expected when someone rejoins and
	// leaves repeatedly; kept as a list for invite-abuse checks.
	PreviouslyInvitedMembers []uint64 `gorm:"serializer:json" json:"previously_invited_members"`
}

// UsedBy reports whether the member joined the guild through this invite.
func (i *Invite) UsedBy(memberID uint64) bool {
	for _, id := range i.InvitedMembers {
		if id == memberID {
			return true
		}
	}
	return false
}

// AddMember attributes the member to this invite. Adding an already
// attributed member is a no-op.
func (i *Invite) AddMember(memberID uint64) {
	if i.UsedBy(memberID) {
		return
	}
	i.InvitedMembers = append(i.InvitedMembers, memberID)
}

// RetireMember moves the member from InvitedMembers to
// PreviouslyInvitedMembers and reports whether they were attributed at all.
func (i *Invite) RetireMember(memberID uint64) bool {
	for n, id := range i.InvitedMembers {
		if id != memberID {
			continue
		}
		i.InvitedMembers = append(i.InvitedMembers[:n], i.InvitedMembers[n+1:]...)
		i.PreviouslyInvitedMembers = append(i.PreviouslyInvitedMembers, memberID)
		return true
	}
	return false
}
