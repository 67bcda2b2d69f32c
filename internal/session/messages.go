package session

// User-facing failure and status texts
const (
	msgPromptFailure  = "An unexpected network error occurred. Please check your connection and try again."
	msgUploadFailure  = "Sorry, I encountered an unexpected error. The AI model might be busy. Please try again in a moment."
	msgReadFailure    = "Sorry, I couldn't read that file."
	msgEmptyArchive   = "The zip file is empty or does not contain any files."
	msgCorruptArchive = "I ran into an error trying to unzip that file: %v"
	msgApplyFailure   = "I couldn't apply those changes to the project: %v"

	noticeUnexpected    = "An unexpected error occurred."
	noticeReadFailure   = "File could not be read."
	noticeZipFailure    = "Could not process zip file."
	noticeFilesUpdated  = "Project files have been updated."
	noticeProjectLoaded = "Project loaded from zip file."
	noticeApplyFailure  = "The suggested changes could not be applied."
)
