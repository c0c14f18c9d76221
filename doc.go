/*
Package tkdpoller polls a Google Drive folder for new or modified Google Sheets and forwards
each one, exported as CSV, to a downstream processing endpoint.

A "last checked" checkpoint is kept in durable storage (a Cloud Storage object by default) so
that each run only considers the spreadsheets modified since the previous run.

The poller can be run:

  - as a Cloud Functions Pub/Sub background function (PollDrive)
  - as a Pub/Sub push endpoint, e.g. on Cloud Run (tkd-project-poller serve)
  - locally on a fixed interval (tkd-project-poller watch)
  - once, from the command line or a cron job (tkd-project-poller run)
*/
package tkdpoller
