package objectstore

// 返回给调用方的消息文本，兼容实现必须逐字一致
const (
	msgAdded           = "Added %s to stage."
	msgCommitted       = "%s\n\t%d objects changed"
	msgNothingToCommit = "Nothing to commit, working directory clean."
	msgFound           = "Found object %s."
	msgNotCommitted    = "Object %s is not committed."
	msgPendingRemoval  = "Added %s for removal."
	msgHeadAt          = "HEAD is now at %s."
	msgHashMissing     = "Commit %s does not exist."
	msgNoCommits       = "Branch %s does not have any commits yet."
	msgLogEntry        = "Commit %s\nDate: %s\n\n\t%s\n\n"
	msgCannotCommit    = "Cannot commit: %v"

	msgOnBranch      = "On branch %s"
	msgNothingStaged = "nothing staged"
	msgStagedHeader  = "Changes to be committed:"

	msgBranchExists   = "Branch %s already exists."
	msgBranchCreated  = "Created branch %s."
	msgBranchMissing  = "Branch %s does not exist."
	msgBranchSwitched = "Switched to branch %s."
	msgBranchRemoved  = "Removed branch %s"
	msgBranchCurrent  = "Cannot remove current branch %s."
)
