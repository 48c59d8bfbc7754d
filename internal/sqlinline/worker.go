package sqlinline

const QExpireStaleSessions = `--sql 4e1fbcd1-9e6f-4f52-baa9-47dc8f19e134
update sessions
set status = 'expired', updated_at = now()
where status = 'active' and expires_at < now()
returning id;
`

const QListUploadsForExpiredSession = `--sql 28fb2104-01c9-495b-aeac-250a9fd6f613
select storage_key
from uploads
where session_id = $1::uuid;
`

const QDeleteUploadsForSession = `--sql f9358911-09e9-4678-9b14-766af1764901
delete from uploads
where session_id = $1::uuid;
`

const QDeleteFieldStatesForSession = `--sql 08b82855-0cf3-4149-bf27-f9113d83ddfd
delete from field_states
where session_id = $1::uuid;
`
